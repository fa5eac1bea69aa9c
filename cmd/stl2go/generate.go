package main

import (
	"bytes"
	"fmt"
	"go/format"
	"math"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"gonum.org/v1/gonum/spatial/r3"

	"tiny3d/sparkos/mesh"
	"tiny3d/sparkos/mesh/stl"
)

// Options controls the generated file.
type Options struct {
	Name    string
	Package string
	// Scale multiplies every coordinate; the zero value means 1.
	Scale   float64
	Normals bool
	Source  string
}

type genVertex struct{ X, Y, Z int32 }

type genData struct {
	Source    string
	Package   string
	Qual      string
	Name      string
	Lower     string
	Label     string
	Vertices  []genVertex
	Faces     [][3]int
	Normals   []genVertex
	HasNormal bool
}

var fileTmpl = template.Must(template.New("mesh").Parse(`// Code generated by stl2go from {{.Source}}; DO NOT EDIT.

package {{.Package}}
{{if .Qual}}
import "tiny3d/sparkos/mesh"
{{end}}
const (
	{{.Name}}VertexCount = {{len .Vertices}}
	{{.Name}}FaceCount = {{len .Faces}}
)

var {{.Lower}}Vertices = [{{.Name}}VertexCount]{{.Qual}}Vertex3D{
{{- range .Vertices}}
	{X: {{.X}}, Y: {{.Y}}, Z: {{.Z}}},
{{- end}}
}

var {{.Lower}}Faces = [{{.Name}}FaceCount]{{.Qual}}Face{
{{- range .Faces}}
	{ {{- index . 0}}, {{index . 1}}, {{index . 2 -}} },
{{- end}}
}
{{if .HasNormal}}
var {{.Lower}}Normals = [{{.Name}}FaceCount]{{.Qual}}Vertex3D{
{{- range .Normals}}
	{X: {{.X}}, Y: {{.Y}}, Z: {{.Z}}},
{{- end}}
}
{{end}}
// {{.Name}} is the mesh converted from {{.Source}}.
var {{.Name}} = {{.Qual}}NewModel("{{.Label}}", {{.Lower}}Vertices[:], {{.Lower}}Faces[:], {{if .HasNormal}}{{.Lower}}Normals[:]{{else}}nil{{end}})
`))

// Generate renders s as gofmt-formatted Go source.
func Generate(s *stl.Solid, opts Options) ([]byte, error) {
	if len(s.Vertices) > mesh.MaxVertices {
		return nil, fmt.Errorf("%d vertices exceeds %d", len(s.Vertices), mesh.MaxVertices)
	}
	if len(s.Faces) == 0 {
		return nil, fmt.Errorf("no triangles")
	}
	if opts.Name == "" || !unicode.IsUpper([]rune(opts.Name)[0]) {
		return nil, fmt.Errorf("name %q must be an exported identifier", opts.Name)
	}
	if opts.Package == "" {
		opts.Package = "mesh"
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if err := checkScale(opts.Scale); err != nil {
		return nil, err
	}

	d := genData{
		Source:    opts.Source,
		Package:   opts.Package,
		Name:      opts.Name,
		Lower:     lowerFirst(opts.Name),
		Label:     strings.ToLower(opts.Name),
		Faces:     s.Faces,
		HasNormal: opts.Normals,
	}
	if opts.Package != "mesh" {
		d.Qual = "mesh."
	}
	if d.Source == "" {
		d.Source = d.Label + ".stl"
	}

	for i, v := range s.Vertices {
		gv, err := fixedVertex(v[0]*opts.Scale, v[1]*opts.Scale, v[2]*opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		d.Vertices = append(d.Vertices, gv)
	}

	if opts.Normals {
		for i, f := range s.Faces {
			var n r3.Vec
			if s.Normals != nil {
				n = r3.Vec{X: s.Normals[i][0], Y: s.Normals[i][1], Z: s.Normals[i][2]}
			}
			if r3.Norm(n) == 0 {
				n = faceNormal(s.Vertices[f[0]], s.Vertices[f[1]], s.Vertices[f[2]])
			} else {
				n = r3.Unit(n)
			}
			gn, err := fixedVertex(n.X, n.Y, n.Z)
			if err != nil {
				return nil, fmt.Errorf("normal %d: %w", i, err)
			}
			d.Normals = append(d.Normals, gn)
		}
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, d); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return src, nil
}

// faceNormal returns the unit normal implied by the a, b, c winding.
func faceNormal(a, b, c stl.Vec3) r3.Vec {
	va := r3.Vec{X: a[0], Y: a[1], Z: a[2]}
	vb := r3.Vec{X: b[0], Y: b[1], Z: b[2]}
	vc := r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	n := r3.Cross(r3.Sub(vb, va), r3.Sub(vc, va))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// toFixed scales by mesh.Precision and truncates toward zero.
// checkScale rejects scales that would collapse or poison every coordinate.
func checkScale(f float64) error {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("scale %v: must be finite and non-zero", f)
	}
	return nil
}

func fixedVertex(x, y, z float64) (genVertex, error) {
	var v genVertex
	var err error
	if v.X, err = toFixed(x); err != nil {
		return v, err
	}
	if v.Y, err = toFixed(y); err != nil {
		return v, err
	}
	v.Z, err = toFixed(z)
	return v, err
}

func toFixed(v float64) (int32, error) {
	f := math.Trunc(v * mesh.Precision)
	if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("coordinate %v out of fixed-point range", v)
	}
	return int32(f), nil
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// exportedName turns "models/my-cube.stl" into "MyCube".
func exportedName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "Model" + name
	}
	return name
}
