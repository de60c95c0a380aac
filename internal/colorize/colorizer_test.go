package colorize

import (
	"testing"

	"github.com/golang/geo/r3"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

func analyzeTerrain(t *testing.T, terrainType terrain.Type, seed int64) (*terrain.Mesh, *analysis.Result) {
	t.Helper()
	hm, err := terrain.GenerateHeightmap(12, 12, terrainType, terrain.DefaultNoiseOptions(seed))
	if err != nil {
		t.Fatalf("GenerateHeightmap failed: %v", err)
	}
	mesh, err := terrain.MeshFromHeightmap(hm, terrain.DefaultMeshOptions())
	if err != nil {
		t.Fatalf("MeshFromHeightmap failed: %v", err)
	}
	res, err := analysis.NewAnalyzer(config.Default().Analysis, seed).Analyze(mesh, 4)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return mesh, res
}

func analyzeFlat(t *testing.T) (*terrain.Mesh, *analysis.Result) {
	t.Helper()
	values := make([][]float64, 8)
	for z := range values {
		values[z] = make([]float64, 8)
	}
	hm := &terrain.Heightmap{Values: values, Width: 8, Depth: 8}
	mesh, err := terrain.MeshFromHeightmap(hm, terrain.DefaultMeshOptions())
	if err != nil {
		t.Fatalf("MeshFromHeightmap failed: %v", err)
	}
	res, err := analysis.NewAnalyzer(config.Default().Analysis, 4).Analyze(mesh, 3)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return mesh, res
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryWater, "water"},
		{CategorySnow, "snow"},
		{CategoryRock, "rock"},
		{CategoryVegetation, "vegetation"},
		{CategoryTerrain, "terrain"},
		{CategoryOther, "other"},
		{Category(42), "other"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %s, want %s", tt.cat, got, tt.want)
		}
	}
}

func TestMapClustersTotal(t *testing.T) {
	_, res := analyzeTerrain(t, terrain.TypeMountain, 9)
	cats := MapClusters(res, ProfileByName(EnvAlpine))

	if len(cats) != res.ClusterCount {
		t.Fatalf("expected %d categories, got %d", res.ClusterCount, len(cats))
	}
	for i, c := range cats {
		if c.String() == "" {
			t.Errorf("cluster %d: empty category", i)
		}
	}
}

func TestMapClustersFlatDesert(t *testing.T) {
	// A perfectly flat mesh has neutral height, slope and roughness, which
	// precludes snow, rock and vegetation in every profile
	_, res := analyzeFlat(t)
	cats := MapClusters(res, ProfileByName(EnvDesert))

	for i, c := range cats {
		if c != CategoryTerrain && c != CategoryWater {
			t.Errorf("cluster %d: flat desert mesh produced %s", i, c)
		}
	}
}

func TestColorizeBuffer(t *testing.T) {
	mesh, res := analyzeTerrain(t, terrain.TypeMountain, 19)
	c := NewColorizer(ProfileByName(EnvAlpine), config.Default().Color, 19)

	colors, report, err := c.Colorize(mesh, res)
	if err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}
	if len(colors) != len(mesh.Vertices) {
		t.Fatalf("expected %d colors, got %d", len(mesh.Vertices), len(colors))
	}
	for i, col := range colors {
		for _, ch := range []float64{col.R, col.G, col.B, col.A} {
			if ch < 0 || ch > 1 {
				t.Fatalf("vertex %d: channel %f outside [0,1]", i, ch)
			}
		}
	}

	if report.Environment != EnvAlpine {
		t.Errorf("report environment = %s, want %s", report.Environment, EnvAlpine)
	}
	if report.Vertices != len(mesh.Vertices) {
		t.Errorf("report vertex count = %d, want %d", report.Vertices, len(mesh.Vertices))
	}
	total := 0
	pct := 0.0
	for _, s := range report.Categories {
		total += s.Count
		pct += s.Percentage
	}
	if total != len(mesh.Vertices) {
		t.Errorf("category counts sum to %d, want %d", total, len(mesh.Vertices))
	}
	if pct < 99.9 || pct > 100.1 {
		t.Errorf("category percentages sum to %f", pct)
	}
}

func TestColorizeDeterministic(t *testing.T) {
	mesh, res := analyzeTerrain(t, terrain.TypeHills, 27)
	c := NewColorizer(ProfileByName(EnvForest), config.Default().Color, 27)

	a, _, err := c.Colorize(mesh, res)
	if err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}
	b, _, err := c.Colorize(mesh, res)
	if err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("colors differ at vertex %d across identical runs", i)
		}
	}
}

func TestColorizeVertexCloud(t *testing.T) {
	// No faces: no adjacency, no normals, yet the pipeline still produces a
	// full color buffer
	mesh := &terrain.Mesh{}
	for i := 0; i < 24; i++ {
		mesh.Vertices = append(mesh.Vertices, r3.Vector{X: float64(i % 6), Y: float64(i) * 0.2, Z: float64(i / 6)})
	}
	res, err := analysis.NewAnalyzer(config.Default().Analysis, 3).Analyze(mesh, 3)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	c := NewColorizer(ProfileByName(EnvTundra), config.Default().Color, 3)
	colors, _, err := c.Colorize(mesh, res)
	if err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}
	if len(colors) != len(mesh.Vertices) {
		t.Fatalf("expected %d colors, got %d", len(mesh.Vertices), len(colors))
	}
}

func TestColorizeInvalidMesh(t *testing.T) {
	c := NewColorizer(ProfileByName(EnvDefault), config.Default().Color, 1)
	if _, _, err := c.Colorize(&terrain.Mesh{}, &analysis.Result{}); err == nil {
		t.Fatal("expected error for empty mesh")
	}
}

func TestWetnessFalloff(t *testing.T) {
	// Path 0-1, 1-2, 2-3 built from degenerate triangles
	g := analysis.BuildGraph(4, [][3]int{{0, 1, 1}, {1, 2, 2}, {2, 3, 3}})
	res := &analysis.Result{
		Labels:       []int{0, 1, 1, 1},
		ClusterCount: 2,
		Graph:        g,
	}
	cats := []Category{CategoryWater, CategoryTerrain}

	wet := wetness(res, cats, 2)
	if wet[0] != 0 {
		t.Errorf("water vertex should have no wetness factor, got %f", wet[0])
	}
	if wet[1] != 1 {
		t.Errorf("adjacent vertex: expected wetness 1, got %f", wet[1])
	}
	if wet[2] != 0.5 {
		t.Errorf("two hops out: expected wetness 0.5, got %f", wet[2])
	}
	if wet[3] != 0 {
		t.Errorf("outside radius: expected wetness 0, got %f", wet[3])
	}
}
