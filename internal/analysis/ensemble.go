package analysis

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
	"github.com/Alp-0zturk/Text-to-mesh/internal/logger"
)

// ErrInsufficientClusteringSignal is returned when every clustering method fails, which
// cannot happen as long as the height baseline runs but guards the ensemble
// against misconfiguration.
var ErrInsufficientClusteringSignal = errors.New("analysis: no clustering method produced a labeling")

// Clustering method names, used in logs and in the MethodResult report.
const (
	MethodKMeans       = "kmeans"
	MethodDensity      = "density"
	MethodHierarchical = "hierarchical"
	MethodHeight       = "height"
)

// MethodResult records one clustering method's outcome for the report.
type MethodResult struct {
	Name     string
	Weight   float64
	Clusters int
	Err      error
}

// Ensemble runs the clustering methods and merges their labelings into a
// consensus segmentation.
type Ensemble struct {
	cfg  config.AnalysisConfig
	seed int64
}

// NewEnsemble builds an ensemble from analysis settings and a seed. The seed
// only reaches the k-means initializer; the other methods are deterministic
// by construction.
func NewEnsemble(cfg config.AnalysisConfig, seed int64) *Ensemble {
	return &Ensemble{cfg: cfg, seed: seed}
}

// Run clusters the feature matrix with every method, folds density noise into
// neighboring clusters, and returns the weighted co-association consensus
// labels together with per-method outcomes. Labels are contiguous from 0 and
// ordered by descending cluster size.
func (e *Ensemble) Run(feats *Features, g *Graph, k int) ([]int, []MethodResult, error) {
	data := feats.Matrix()
	n := len(data)
	if n == 0 {
		return nil, nil, errors.New("analysis: empty feature matrix")
	}

	type methodRun struct {
		name    string
		weight  float64
		cluster func() ([]int, error)
	}
	runs := []methodRun{
		{MethodKMeans, e.cfg.WeightKMeans, func() ([]int, error) {
			return kmeansCluster(data, k, e.seed)
		}},
		{MethodDensity, e.cfg.WeightDensity, func() ([]int, error) {
			return dbscanCluster(data)
		}},
		{MethodHierarchical, e.cfg.WeightHierarchical, func() ([]int, error) {
			return hierarchicalCluster(data, k, e.cfg.HierarchicalMax)
		}},
		{MethodHeight, e.cfg.WeightHeight, func() ([]int, error) {
			return heightBinCluster(feats.Height, k)
		}},
	}

	labelings := make([][]int, len(runs))
	results := make([]MethodResult, len(runs))

	var wg sync.WaitGroup
	for i, r := range runs {
		wg.Add(1)
		go func(i int, r methodRun) {
			defer wg.Done()
			labels, err := r.cluster()
			results[i] = MethodResult{Name: r.name, Weight: r.weight, Err: err}
			if err != nil {
				return
			}
			labels = foldNoise(labels, g)
			results[i].Clusters = distinctLabels(labels)
			labelings[i] = labels
		}(i, r)
	}
	wg.Wait()

	var used [][]int
	var weights []float64
	totalWeight := 0.0
	for i, r := range results {
		if r.Err != nil {
			logger.Warn("clustering method failed",
				zap.String("method", r.Name),
				zap.Error(r.Err))
			continue
		}
		used = append(used, labelings[i])
		weights = append(weights, r.Weight)
		totalWeight += r.Weight
	}
	if len(used) == 0 || totalWeight <= 0 {
		return nil, results, ErrInsufficientClusteringSignal
	}

	consensus := coAssociation(used, weights, totalWeight, e.cfg.ConsensusThreshold)
	return relabelBySize(consensus), results, nil
}

// foldNoise reassigns density noise vertices to the label of the nearest
// labeled vertex along mesh edges so every vertex enters the vote. Noise with
// no labeled vertex reachable keeps its own cluster.
func foldNoise(labels []int, g *Graph) []int {
	hasAny := false
	for _, l := range labels {
		if l == noiseLabel {
			hasAny = true
			break
		}
	}
	if !hasAny {
		return labels
	}

	out := make([]int, len(labels))
	copy(out, labels)

	for i, l := range labels {
		if l != noiseLabel {
			continue
		}
		// BFS outward until a labeled vertex appears
		visited := map[int32]bool{int32(i): true}
		queue := []int32{int32(i)}
		found := -1
		for len(queue) > 0 && found < 0 {
			v := queue[0]
			queue = queue[1:]
			for _, nb := range g.Neighbors(int(v)) {
				if visited[nb] {
					continue
				}
				if labels[nb] != noiseLabel {
					found = labels[nb]
					break
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
		if found >= 0 {
			out[i] = found
		}
	}

	// Any noise left becomes its own cluster
	next := maxLabel(out) + 1
	for i, l := range out {
		if l == noiseLabel {
			out[i] = next
			next++
		}
	}
	return out
}

func maxLabel(labels []int) int {
	m := -1
	for _, l := range labels {
		if l > m {
			m = l
		}
	}
	return m
}

// coAssociation merges labelings by weighted pairwise agreement: vertices
// whose agreeing methods carry at least threshold of the total weight end up
// in the same consensus cluster. Union-find keeps the merge transitive.
func coAssociation(labelings [][]int, weights []float64, totalWeight, threshold float64) []int {
	n := len(labelings[0])
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			agree := 0.0
			for m, labels := range labelings {
				if labels[i] == labels[j] {
					agree += weights[m]
				}
			}
			if agree/totalWeight >= threshold {
				uf.union(i, j)
			}
		}
	}

	labels := make([]int, n)
	rootLabel := make(map[int]int)
	next := 0
	for i := 0; i < n; i++ {
		root := uf.find(i)
		l, ok := rootLabel[root]
		if !ok {
			l = next
			rootLabel[root] = l
			next++
		}
		labels[i] = l
	}
	return labels
}

// relabelBySize renumbers labels so that 0 is the largest cluster, ties
// broken by the lowest original label.
func relabelBySize(labels []int) []int {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}
	order := make([]int, 0, len(counts))
	for l := range counts {
		order = append(order, l)
	}
	sort.Slice(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return order[a] < order[b]
	})

	remap := make(map[int]int, len(order))
	for newLabel, old := range order {
		remap[old] = newLabel
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = remap[l]
	}
	return out
}

// unionFind is a standard disjoint-set forest with path halving.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
