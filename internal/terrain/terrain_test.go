package terrain

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestGenerateHeightmapDeterminism(t *testing.T) {
	opts := DefaultNoiseOptions(99)

	a, err := GenerateHeightmap(16, 16, TypeMountain, opts)
	if err != nil {
		t.Fatalf("GenerateHeightmap failed: %v", err)
	}
	b, err := GenerateHeightmap(16, 16, TypeMountain, opts)
	if err != nil {
		t.Fatalf("GenerateHeightmap failed: %v", err)
	}

	for z := range a.Depth {
		for x := range a.Width {
			if a.Values[z][x] != b.Values[z][x] {
				t.Fatalf("heightmaps differ at (%d,%d): %f vs %f", x, z, a.Values[z][x], b.Values[z][x])
			}
		}
	}
}

func TestGenerateHeightmapSeedsDiffer(t *testing.T) {
	a, _ := GenerateHeightmap(16, 16, TypeHills, DefaultNoiseOptions(1))
	b, _ := GenerateHeightmap(16, 16, TypeHills, DefaultNoiseOptions(2))

	same := true
	for z := range a.Depth {
		for x := range a.Width {
			if a.Values[z][x] != b.Values[z][x] {
				same = false
			}
		}
	}
	if same {
		t.Error("different seeds produced identical heightmaps")
	}
}

func TestGenerateHeightmapTypes(t *testing.T) {
	types := []Type{TypeDefault, TypeMountain, TypeHills, TypeValley, TypePlateau, TypeCanyon}

	for _, tt := range types {
		t.Run(tt.String(), func(t *testing.T) {
			hm, err := GenerateHeightmap(12, 10, tt, DefaultNoiseOptions(5))
			if err != nil {
				t.Fatalf("GenerateHeightmap failed: %v", err)
			}
			if hm.Width != 12 || hm.Depth != 10 {
				t.Errorf("expected 12x10 heightmap, got %dx%d", hm.Width, hm.Depth)
			}
			for z := range hm.Depth {
				for x := range hm.Width {
					if math.IsNaN(hm.Values[z][x]) || math.IsInf(hm.Values[z][x], 0) {
						t.Fatalf("non-finite height at (%d,%d)", x, z)
					}
				}
			}
		})
	}
}

func TestGenerateHeightmapTooSmall(t *testing.T) {
	if _, err := GenerateHeightmap(1, 8, TypeDefault, DefaultNoiseOptions(0)); err == nil {
		t.Error("expected error for 1-sample width")
	}
}

func TestPlateauFloor(t *testing.T) {
	hm, err := GenerateHeightmap(16, 16, TypePlateau, DefaultNoiseOptions(3))
	if err != nil {
		t.Fatalf("GenerateHeightmap failed: %v", err)
	}
	for z := range hm.Depth {
		for x := range hm.Width {
			if hm.Values[z][x] < 0.1 {
				t.Fatalf("plateau height %f below floor at (%d,%d)", hm.Values[z][x], x, z)
			}
		}
	}
}

func TestApplyErosionConservative(t *testing.T) {
	hm, _ := GenerateHeightmap(16, 16, TypeMountain, DefaultNoiseOptions(7))

	before := make([][]float64, hm.Depth)
	for z := range hm.Depth {
		before[z] = append([]float64(nil), hm.Values[z]...)
	}

	ApplyErosion(hm, 5, 0.01, 7)

	changed := false
	for z := range hm.Depth {
		for x := range hm.Width {
			if hm.Values[z][x] != before[z][x] {
				changed = true
			}
			if math.IsNaN(hm.Values[z][x]) {
				t.Fatalf("NaN after erosion at (%d,%d)", x, z)
			}
		}
	}
	if !changed {
		t.Error("erosion changed nothing")
	}
}

func TestAddFeatures(t *testing.T) {
	hm, _ := GenerateHeightmap(16, 16, TypeHills, DefaultNoiseOptions(11))

	var sumBefore float64
	for z := range hm.Depth {
		for x := range hm.Width {
			sumBefore += hm.Values[z][x]
		}
	}

	AddFeatures(hm, FeatureRocks, 0.05, 11)

	var sumAfter float64
	for z := range hm.Depth {
		for x := range hm.Width {
			sumAfter += hm.Values[z][x]
		}
	}

	if sumAfter <= sumBefore {
		t.Error("rock features should raise total height")
	}

	AddFeatures(hm, FeatureCraters, 0.05, 12)
	var sumCratered float64
	for z := range hm.Depth {
		for x := range hm.Width {
			sumCratered += hm.Values[z][x]
		}
	}
	if sumCratered >= sumAfter {
		t.Error("crater features should lower total height")
	}
}

func TestSlopeMap(t *testing.T) {
	flat := &Heightmap{
		Values: [][]float64{{0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}},
		Width:  3,
		Depth:  3,
	}
	for z, row := range SlopeMap(flat) {
		for x, s := range row {
			if s != 0 {
				t.Errorf("flat heightmap: expected zero slope at (%d,%d), got %f", x, z, s)
			}
		}
	}

	ramp := &Heightmap{
		Values: [][]float64{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}},
		Width:  3,
		Depth:  3,
	}
	slopes := SlopeMap(ramp)
	if slopes[1][1] <= 0 {
		t.Errorf("ramp heightmap: expected positive slope at center, got %f", slopes[1][1])
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := &Mesh{Vertices: []r3.Vector{
		{X: -2, Y: 1, Z: 0},
		{X: 3, Y: -4, Z: 5},
		{X: 0, Y: 7, Z: -1},
	}}

	min, max := mesh.Bounds()
	wantMin := r3.Vector{X: -2, Y: -4, Z: -1}
	wantMax := r3.Vector{X: 3, Y: 7, Z: 5}
	if min != wantMin || max != wantMax {
		t.Errorf("Bounds() = %v, %v; want %v, %v", min, max, wantMin, wantMax)
	}

	empty := &Mesh{}
	min, max = empty.Bounds()
	if min != (r3.Vector{}) || max != (r3.Vector{}) {
		t.Errorf("empty mesh bounds should be zero vectors, got %v, %v", min, max)
	}
}

func TestMeshFromHeightmap(t *testing.T) {
	hm, _ := GenerateHeightmap(8, 6, TypeDefault, DefaultNoiseOptions(1))

	mesh, err := MeshFromHeightmap(hm, DefaultMeshOptions())
	if err != nil {
		t.Fatalf("MeshFromHeightmap failed: %v", err)
	}

	if len(mesh.Vertices) != 8*6 {
		t.Errorf("expected %d vertices, got %d", 8*6, len(mesh.Vertices))
	}
	wantFaces := 2 * 7 * 5
	if len(mesh.Faces) != wantFaces {
		t.Errorf("expected %d faces, got %d", wantFaces, len(mesh.Faces))
	}

	if err := mesh.Validate(); err != nil {
		t.Errorf("generated mesh failed validation: %v", err)
	}
}

func TestMeshValidate(t *testing.T) {
	empty := &Mesh{}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty mesh")
	}

	withBadFace := &Mesh{
		Vertices: []r3.Vector{{}, {}, {}},
		Faces:    [][3]int{{0, 1, 5}},
	}
	if err := withBadFace.Validate(); err == nil {
		t.Error("expected error for out-of-range face index")
	}
}

func TestVertexNormalsPointUpOnFlatGrid(t *testing.T) {
	hm := &Heightmap{
		Values: [][]float64{
			{0, 0, 0},
			{0, 0, 0},
			{0, 0, 0},
		},
		Width: 3,
		Depth: 3,
	}

	mesh, err := MeshFromHeightmap(hm, MeshOptions{Width: 10, Depth: 10, HeightScale: 1, WorldScale: 1})
	if err != nil {
		t.Fatalf("MeshFromHeightmap failed: %v", err)
	}

	normals := VertexNormals(mesh)
	if len(normals) != len(mesh.Vertices) {
		t.Fatalf("expected %d normals, got %d", len(mesh.Vertices), len(normals))
	}

	for i, n := range normals {
		if math.Abs(n.Y) < 0.99 {
			t.Errorf("normal %d not vertical on flat grid: %v", i, n)
		}
	}
}

func TestVertexNormalsIsolatedVertex(t *testing.T) {
	mesh := &Mesh{Vertices: []r3.Vector{{X: 1, Y: 2, Z: 3}}}

	normals := VertexNormals(mesh)
	if normals[0].Y != 1 {
		t.Errorf("expected up normal for isolated vertex, got %v", normals[0])
	}
}

func TestCollisionMesh(t *testing.T) {
	hm, _ := GenerateHeightmap(17, 17, TypeMountain, DefaultNoiseOptions(4))

	full, _ := MeshFromHeightmap(hm, DefaultMeshOptions())
	coarse, err := CollisionMesh(hm, DefaultMeshOptions(), 4)
	if err != nil {
		t.Fatalf("CollisionMesh failed: %v", err)
	}

	if len(coarse.Vertices) >= len(full.Vertices) {
		t.Errorf("collision mesh (%d verts) not smaller than visual mesh (%d verts)",
			len(coarse.Vertices), len(full.Vertices))
	}
	if err := coarse.Validate(); err != nil {
		t.Errorf("collision mesh failed validation: %v", err)
	}
}
