package mesh

import (
	"errors"
	"strings"
	"testing"
)

func TestCubeCounts(t *testing.T) {
	if CubeVertexCount != 8 || Cube.VertexCount() != 8 {
		t.Fatalf("vertex count = %d/%d, want 8", CubeVertexCount, Cube.VertexCount())
	}
	if CubeFaceCount != 12 || Cube.FaceCount() != 12 {
		t.Fatalf("face count = %d/%d, want 12", CubeFaceCount, Cube.FaceCount())
	}
}

func TestCubeCoordinates(t *testing.T) {
	const want = 14 * Precision
	for i := 0; i < Cube.VertexCount(); i++ {
		v := Cube.Vertex(i)
		for _, c := range []int32{v.X, v.Y, v.Z} {
			if c != want && c != -want {
				t.Fatalf("vertex %d = %+v, want |coord| == %d", i, v, want)
			}
		}
	}
}

func TestCubeFaces(t *testing.T) {
	for i := 0; i < Cube.FaceCount(); i++ {
		f := Cube.Face(i)
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			t.Fatalf("face %d = %v has repeated index", i, f)
		}
		for _, idx := range f {
			if int(idx) >= CubeVertexCount {
				t.Fatalf("face %d = %v index out of range", i, f)
			}
		}
	}
}

func TestCubeValidate(t *testing.T) {
	if err := Validate(Cube); err != nil {
		t.Fatalf("Validate(Cube): %v", err)
	}
}

func TestCubeReadsAreStable(t *testing.T) {
	first := Cube.Vertex(5)
	for i := 0; i < 100; i++ {
		if got := Cube.Vertex(5); got != first {
			t.Fatalf("read %d: Vertex(5) = %+v, want %+v", i, got, first)
		}
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	if !Cube.HasNormals() {
		t.Fatal("expected cube normals")
	}
	for i := 0; i < Cube.FaceCount(); i++ {
		n, ok := Cube.Normal(i)
		if !ok {
			t.Fatalf("Normal(%d) missing", i)
		}
		f := Cube.Face(i)
		c := cross(Cube.Vertex(int(f[0])), Cube.Vertex(int(f[1])), Cube.Vertex(int(f[2])))
		if c.x*int64(n.X)+c.y*int64(n.Y)+c.z*int64(n.Z) <= 0 {
			t.Fatalf("face %d normal %+v disagrees with winding", i, n)
		}

		var centroid [3]int64
		for _, idx := range f {
			v := Cube.Vertex(int(idx))
			centroid[0] += int64(v.X)
			centroid[1] += int64(v.Y)
			centroid[2] += int64(v.Z)
		}
		if centroid[0]*int64(n.X)+centroid[1]*int64(n.Y)+centroid[2]*int64(n.Z) <= 0 {
			t.Fatalf("face %d normal %+v points inward", i, n)
		}
		if n.X*n.X+n.Y*n.Y+n.Z*n.Z != Precision*Precision {
			t.Fatalf("face %d normal %+v is not unit length", i, n)
		}
	}
}

func TestModelIndexPanics(t *testing.T) {
	cases := map[string]func(){
		"vertex -1": func() { Cube.Vertex(-1) },
		"vertex 8":  func() { Cube.Vertex(CubeVertexCount) },
		"face 12":   func() { Cube.Face(CubeFaceCount) },
		"normal 12": func() { Cube.Normal(CubeFaceCount) },
		"normal -1": func() { Cube.Normal(-1) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if s, ok := r.(string); !ok || !strings.Contains(s, "out of range") {
					t.Fatalf("panic = %v, want out of range message", r)
				}
			}()
			fn()
		})
	}
}

func TestNewModelNormalCountMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewModel("bad", cubeVertices[:], cubeFaces[:], cubeNormals[:3])
}

func TestValidateErrors(t *testing.T) {
	tri := []Vertex3D{{0, 0, 0}, {Precision, 0, 0}, {0, Precision, 0}}

	cases := []struct {
		name  string
		model Model
		want  error
	}{
		{"index out of range", NewModel("oob", tri, []Face{{0, 1, 3}}, nil), ErrFaceIndex},
		{"repeated index", NewModel("rep", tri, []Face{{0, 1, 1}}, nil), ErrDegenerate},
		{"collinear", NewModel("line", []Vertex3D{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}, []Face{{0, 1, 2}}, nil), ErrDegenerate},
		{"open surface", NewModel("open", tri, []Face{{0, 1, 2}}, nil), ErrOpen},
		{"flipped face", NewModel("flip", cubeVertices[:], append([]Face{{1, 0, 2}}, cubeFaces[1:]...), nil), ErrOpen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.model); !errors.Is(err, tc.want) {
				t.Fatalf("Validate = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateDoubleSidedTriangle(t *testing.T) {
	tri := []Vertex3D{{0, 0, 0}, {Precision, 0, 0}, {0, Precision, 0}}
	m := NewModel("sheet", tri, []Face{{0, 1, 2}, {0, 2, 1}}, nil)
	if err := Validate(m); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}
}
