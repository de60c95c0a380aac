package analysis

import (
	"math/rand"
	"testing"

	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
)

// makeBlobs builds two well-separated clusters in feature space.
func makeBlobs(perBlob int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, 2*perBlob)
	for b := 0; b < 2; b++ {
		center := float64(b)
		for i := 0; i < perBlob; i++ {
			row := make([]float64, len(FeatureNames))
			for c := range row {
				row[c] = center + rng.Float64()*0.05
			}
			data = append(data, row)
		}
	}
	return data
}

func sameSide(labels []int, a, b int) bool { return labels[a] == labels[b] }

func TestKMeansSeparatesBlobs(t *testing.T) {
	data := makeBlobs(25, 1)
	labels, err := kmeansCluster(data, 2, 42)
	if err != nil {
		t.Fatalf("kmeansCluster failed: %v", err)
	}
	if got := distinctLabels(labels); got != 2 {
		t.Fatalf("expected 2 clusters, got %d", got)
	}
	if !sameSide(labels, 0, 1) || !sameSide(labels, 25, 26) || sameSide(labels, 0, 25) {
		t.Error("blob members split across clusters")
	}
}

func TestKMeansErrors(t *testing.T) {
	tests := []struct {
		name string
		data [][]float64
		k    int
	}{
		{"empty", nil, 3},
		{"k too small", makeBlobs(5, 1), 1},
		{"identical points", [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := kmeansCluster(tt.data, tt.k, 7); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestKMeansDeterministic(t *testing.T) {
	data := makeBlobs(20, 3)
	a, err := kmeansCluster(data, 3, 99)
	if err != nil {
		t.Fatalf("kmeansCluster failed: %v", err)
	}
	b, _ := kmeansCluster(data, 3, 99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("labels differ at %d with the same seed", i)
		}
	}
}

func TestDBSCANSeparatesBlobs(t *testing.T) {
	data := makeBlobs(30, 2)
	labels, err := dbscanCluster(data)
	if err != nil {
		t.Fatalf("dbscanCluster failed: %v", err)
	}
	if got := distinctLabels(labels); got < 2 {
		t.Fatalf("expected at least 2 clusters, got %d", got)
	}
}

func TestHierarchicalSeparatesBlobs(t *testing.T) {
	data := makeBlobs(20, 4)
	labels, err := hierarchicalCluster(data, 2, 5000)
	if err != nil {
		t.Fatalf("hierarchicalCluster failed: %v", err)
	}
	if got := distinctLabels(labels); got != 2 {
		t.Fatalf("expected 2 clusters, got %d", got)
	}
	if sameSide(labels, 0, 20) {
		t.Error("blobs merged into one cluster")
	}
}

func TestHierarchicalVertexCap(t *testing.T) {
	data := makeBlobs(20, 4)
	if _, err := hierarchicalCluster(data, 2, 10); err == nil {
		t.Error("expected error above the vertex cap")
	}
}

func TestHeightBins(t *testing.T) {
	heights := []float64{0.05, 0.1, 0.5, 0.55, 0.9, 0.95}
	labels, err := heightBinCluster(heights, 3)
	if err != nil {
		t.Fatalf("heightBinCluster failed: %v", err)
	}
	want := []int{0, 0, 1, 1, 2, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("expected labels %v, got %v", want, labels)
		}
	}
}

func TestHeightBinsConstant(t *testing.T) {
	heights := []float64{0.5, 0.5, 0.5, 0.5}
	labels, err := heightBinCluster(heights, 4)
	if err != nil {
		t.Fatalf("heightBinCluster failed: %v", err)
	}
	// A flat mesh legitimately yields a single bin
	for i, l := range labels {
		if l != 0 {
			t.Errorf("vertex %d: expected label 0, got %d", i, l)
		}
	}
}

func TestFoldNoise(t *testing.T) {
	// Path 0-1-2; middle vertex is noise
	g := BuildGraph(3, [][3]int{{0, 1, 2}})
	labels := foldNoise([]int{0, noiseLabel, 1}, g)
	if labels[1] == noiseLabel {
		t.Fatal("noise vertex not folded")
	}
	if labels[1] != 0 && labels[1] != 1 {
		t.Fatalf("noise folded to unknown label %d", labels[1])
	}
}

func TestFoldNoiseIsolated(t *testing.T) {
	g := BuildGraph(3, nil)
	labels := foldNoise([]int{0, noiseLabel, 0}, g)
	if labels[1] == noiseLabel {
		t.Fatal("isolated noise should become its own cluster")
	}
	if labels[1] == 0 {
		t.Fatal("isolated noise must not join an unreachable cluster")
	}
}

func TestRelabelBySize(t *testing.T) {
	labels := relabelBySize([]int{5, 5, 5, 2, 2, 9})
	want := []int{0, 0, 0, 1, 1, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, labels)
		}
	}
}

func TestEnsembleRun(t *testing.T) {
	mesh := makeTestMesh(t, 5)
	feats, g := extractTestFeatures(t, mesh)

	e := NewEnsemble(config.Default().Analysis, 5)
	labels, methods, err := e.Run(feats, g, 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(labels) != feats.VertexCount() {
		t.Fatalf("expected %d labels, got %d", feats.VertexCount(), len(labels))
	}
	if len(methods) != 4 {
		t.Fatalf("expected 4 method results, got %d", len(methods))
	}

	// Labels are contiguous from zero and sorted by cluster size
	k := distinctLabels(labels)
	sizes := make([]int, k)
	for _, l := range labels {
		if l < 0 || l >= k {
			t.Fatalf("label %d outside contiguous range [0,%d)", l, k)
		}
		sizes[l]++
	}
	for i := 1; i < k; i++ {
		if sizes[i] > sizes[i-1] {
			t.Errorf("cluster %d larger than cluster %d", i, i-1)
		}
	}

	// The height baseline never fails
	for _, m := range methods {
		if m.Name == MethodHeight && m.Err != nil {
			t.Errorf("height method failed: %v", m.Err)
		}
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	mesh := makeTestMesh(t, 8)
	feats, g := extractTestFeatures(t, mesh)

	e := NewEnsemble(config.Default().Analysis, 21)
	a, _, err := e.Run(feats, g, 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, _, err := e.Run(feats, g, 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("labels differ at %d across identical runs", i)
		}
	}
}
