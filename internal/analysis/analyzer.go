// Package analysis segments terrain meshes into semantically coherent
// regions. It extracts per-vertex geometric and topological descriptors,
// clusters them with an ensemble of methods, and cleans the result with a
// spatial majority smoother.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
	"github.com/Alp-0zturk/Text-to-mesh/internal/logger"
	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

const defaultClusters = 5

// Result holds the outcome of one segmentation run.
type Result struct {
	Labels       []int
	ClusterCount int
	Features     *Features
	Graph        *Graph
	Methods      []MethodResult
}

// Analyzer runs the full segmentation pipeline. A single Analyzer is safe
// for concurrent use on distinct meshes.
type Analyzer struct {
	cfg  config.AnalysisConfig
	seed int64
}

// NewAnalyzer builds an analyzer from settings and a deterministic seed.
func NewAnalyzer(cfg config.AnalysisConfig, seed int64) *Analyzer {
	return &Analyzer{cfg: cfg, seed: seed}
}

// Analyze segments the mesh into roughly k clusters. Pass k <= 0 to use the
// cluster hint from settings, falling back to a fixed default.
func (a *Analyzer) Analyze(mesh *terrain.Mesh, k int) (*Result, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = a.cfg.ClusterHint
	}
	if k < 2 {
		k = defaultClusters
	}

	start := time.Now()

	g := BuildGraph(len(mesh.Vertices), mesh.Faces)
	normals := terrain.VertexNormals(mesh)

	feats, err := ExtractFeatures(mesh, g, normals)
	if err != nil {
		return nil, err
	}

	ensemble := NewEnsemble(a.cfg, a.seed)
	labels, methods, err := ensemble.Run(feats, g, k)
	if err != nil {
		return nil, err
	}

	labels = SmoothLabels(labels, g, a.cfg.SmoothingIter, a.cfg.SmoothingMajority)
	// Smoothing can empty a cluster, so renumber once more
	labels = relabelBySize(labels)

	res := &Result{
		Labels:       labels,
		ClusterCount: distinctLabels(labels),
		Features:     feats,
		Graph:        g,
		Methods:      methods,
	}
	logger.Debug("segmentation complete",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("clusters", res.ClusterCount),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// ClusterMeans returns the mean feature vector of each cluster, indexed by
// label, in FeatureNames column order. Labels must be contiguous from 0.
func (r *Result) ClusterMeans() [][]float64 {
	means := make([][]float64, r.ClusterCount)
	counts := make([]int, r.ClusterCount)
	for i := range means {
		means[i] = make([]float64, len(FeatureNames))
	}
	for v, l := range r.Labels {
		vec := r.Features.Vector(v)
		for c, x := range vec {
			means[l][c] += x
		}
		counts[l]++
	}
	for l, cnt := range counts {
		if cnt == 0 {
			continue
		}
		for c := range means[l] {
			means[l][c] /= float64(cnt)
		}
	}
	return means
}

// ClusterSizes returns the vertex count per contiguous label.
func (r *Result) ClusterSizes() []int {
	sizes := make([]int, r.ClusterCount)
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}
