// Package mesh holds compiled-in, fixed-point triangle meshes.
//
// Coordinates are integers pre-scaled by Precision. Faces are index triples
// whose winding encodes the outward normal. A Model never changes after
// initialization; tables are generated by cmd/stl2go.
package mesh

//go:generate go run ../../cmd/stl2go -in testdata/cube.stl -out cube.go -name Cube -pkg mesh -normals -y

import (
	"errors"
	"fmt"
)

// Precision is the fixed-point multiplier applied to coordinates (PRES).
const Precision = 64

// PrecisionShift is log2(Precision).
const PrecisionShift = 6

// MaxVertices is the largest vertex table addressable by a Face.
const MaxVertices = 256

// Vertex3D is a point in PRES-scaled fixed point.
type Vertex3D struct {
	X, Y, Z int32
}

// Face is a triangle given by three vertex indices.
type Face [3]uint8

// Model is an immutable vertex, face and (optional) face-normal table.
type Model struct {
	name     string
	vertices []Vertex3D
	faces    []Face
	normals  []Vertex3D
}

// NewModel wraps static tables. normals may be nil; otherwise it must have one
// entry per face. The slices are retained and must not be modified afterwards.
func NewModel(name string, vertices []Vertex3D, faces []Face, normals []Vertex3D) Model {
	if normals != nil && len(normals) != len(faces) {
		panic(fmt.Sprintf("mesh: %s: %d normals for %d faces", name, len(normals), len(faces)))
	}
	return Model{name: name, vertices: vertices, faces: faces, normals: normals}
}

func (m Model) Name() string     { return m.name }
func (m Model) VertexCount() int { return len(m.vertices) }
func (m Model) FaceCount() int   { return len(m.faces) }
func (m Model) HasNormals() bool { return m.normals != nil }

// Vertex returns the i-th vertex. It panics if i is out of [0, VertexCount()).
func (m Model) Vertex(i int) Vertex3D {
	if i < 0 || i >= len(m.vertices) {
		panic(fmt.Sprintf("mesh: %s: vertex index %d out of range [0,%d)", m.name, i, len(m.vertices)))
	}
	return m.vertices[i]
}

// Face returns the i-th face. It panics if i is out of [0, FaceCount()).
func (m Model) Face(i int) Face {
	if i < 0 || i >= len(m.faces) {
		panic(fmt.Sprintf("mesh: %s: face index %d out of range [0,%d)", m.name, i, len(m.faces)))
	}
	return m.faces[i]
}

// Normal returns the PRES-scaled outward unit normal of face i.
func (m Model) Normal(i int) (Vertex3D, bool) {
	if m.normals == nil {
		return Vertex3D{}, false
	}
	if i < 0 || i >= len(m.normals) {
		panic(fmt.Sprintf("mesh: %s: normal index %d out of range [0,%d)", m.name, i, len(m.normals)))
	}
	return m.normals[i], true
}

var (
	ErrFaceIndex  = errors.New("face index out of range")
	ErrDegenerate = errors.New("degenerate face")
	ErrOpen       = errors.New("surface is not closed")
)

type edge struct{ a, b uint8 }

// Validate checks that every face references three distinct valid vertices,
// has non-zero area, and that every directed edge is matched by exactly one
// opposite edge, i.e. the faces form a closed, consistently wound surface.
func Validate(m Model) error {
	n := m.VertexCount()
	if n > MaxVertices {
		return fmt.Errorf("mesh: %s: %d vertices exceeds %d", m.name, n, MaxVertices)
	}

	edges := make(map[edge]int, 3*m.FaceCount())
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		for _, idx := range f {
			if int(idx) >= n {
				return fmt.Errorf("mesh: %s: face %d index %d: %w", m.name, i, idx, ErrFaceIndex)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			return fmt.Errorf("mesh: %s: face %d %v: %w", m.name, i, f, ErrDegenerate)
		}
		if cross(m.Vertex(int(f[0])), m.Vertex(int(f[1])), m.Vertex(int(f[2]))) == (vec64{}) {
			return fmt.Errorf("mesh: %s: face %d has zero area: %w", m.name, i, ErrDegenerate)
		}
		for k := 0; k < 3; k++ {
			edges[edge{f[k], f[(k+1)%3]}]++
		}
	}

	for e, count := range edges {
		if count != 1 || edges[edge{e.b, e.a}] != 1 {
			return fmt.Errorf("mesh: %s: edge %d-%d: %w", m.name, e.a, e.b, ErrOpen)
		}
	}
	return nil
}

type vec64 struct{ x, y, z int64 }

func cross(a, b, c Vertex3D) vec64 {
	ux, uy, uz := int64(b.X)-int64(a.X), int64(b.Y)-int64(a.Y), int64(b.Z)-int64(a.Z)
	vx, vy, vz := int64(c.X)-int64(a.X), int64(c.Y)-int64(a.Y), int64(c.Z)-int64(a.Z)
	return vec64{
		x: uy*vz - uz*vy,
		y: uz*vx - ux*vz,
		z: ux*vy - uy*vx,
	}
}
