// Package stl reads ASCII STL solids into indexed triangle lists.
package stl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrVertexCount is returned when the vertex lines do not form whole triangles.
var ErrVertexCount = errors.New("vertex count is not a multiple of 3")

// Vec3 is a raw STL coordinate or normal.
type Vec3 [3]float64

// Solid is an STL solid with shared vertices.
//
// Vertices are unique and kept in first-seen order. Each face indexes three
// vertices in file order. Normals holds one facet normal per face when the
// file provides them for every facet, and is nil otherwise.
type Solid struct {
	Name     string
	Vertices []Vec3
	Faces    [][3]int
	Normals  []Vec3
}

// Parse reads an ASCII STL file.
func Parse(r io.Reader) (*Solid, error) {
	s := &Solid{}
	index := make(map[Vec3]int)

	var (
		tri      [3]int
		n        int
		vertices int
		normals  []Vec3
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		tok := strings.Fields(sc.Text())
		if len(tok) == 0 {
			continue
		}

		switch {
		case tok[0] == "solid" && vertices == 0:
			if len(tok) > 1 {
				s.Name = strings.Join(tok[1:], " ")
			}

		case len(tok) == 5 && tok[0] == "facet" && tok[1] == "normal":
			v, err := parseVec(tok[2:])
			if err != nil {
				return nil, fmt.Errorf("stl: line %d: normal: %w", line, err)
			}
			normals = append(normals, v)

		case len(tok) == 4 && tok[0] == "vertex":
			v, err := parseVec(tok[1:])
			if err != nil {
				return nil, fmt.Errorf("stl: line %d: vertex: %w", line, err)
			}
			vertices++

			id, ok := index[v]
			if !ok {
				id = len(s.Vertices)
				index[v] = id
				s.Vertices = append(s.Vertices, v)
			}
			tri[n] = id
			n++
			if n == 3 {
				s.Faces = append(s.Faces, tri)
				n = 0
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stl: read: %w", err)
	}

	if vertices%3 != 0 {
		return nil, fmt.Errorf("stl: %d vertices, missing %d: %w", vertices, 3-vertices%3, ErrVertexCount)
	}
	if len(normals) == len(s.Faces) && len(normals) > 0 {
		s.Normals = normals
	}
	return s, nil
}

func parseVec(tok []string) (Vec3, error) {
	var v Vec3
	for i := range v {
		f, err := strconv.ParseFloat(tok[i], 64)
		if err != nil {
			return Vec3{}, err
		}
		// -0 prints as "-0"; store it as 0.
		if f == 0 {
			f = 0
		}
		v[i] = f
	}
	return v, nil
}
