package analysis

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// noiseLabel marks vertices the density method could not assign to any
// cluster.
const noiseLabel = -1

// dbscanCluster runs density-based clustering over feature rows. Epsilon is
// derived from the 80th percentile of k-nearest-neighbor distances, matching
// the usual k-distance heuristic. Unreachable points get noiseLabel.
func dbscanCluster(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.New("dbscan: no data")
	}

	minPts := n / 100
	if minPts < 5 {
		minPts = 5
	}
	if minPts > n {
		minPts = n
	}

	eps := estimateEps(data)
	if eps <= 0 {
		return nil, errors.New("dbscan: zero epsilon, features are degenerate")
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}

	visited := make([]bool, n)
	clusterID := 0

	for i := range n {
		if visited[i] {
			continue
		}
		visited[i] = true

		nbrs := regionQuery(data, i, eps)
		if len(nbrs) < minPts {
			continue // Stays noise unless later absorbed by a cluster
		}

		labels[i] = clusterID
		// Expand cluster via index queue; order is deterministic
		queue := append([]int(nil), nbrs...)
		for qi := 0; qi < len(queue); qi++ {
			p := queue[qi]
			if labels[p] == noiseLabel {
				labels[p] = clusterID
			}
			if visited[p] {
				continue
			}
			visited[p] = true
			labels[p] = clusterID

			pn := regionQuery(data, p, eps)
			if len(pn) >= minPts {
				queue = append(queue, pn...)
			}
		}
		clusterID++
	}

	if clusterID == 0 {
		return nil, errors.New("dbscan: all points classified as noise")
	}
	if clusterID < 2 && !hasNoise(labels) {
		return nil, errors.New("dbscan: collapsed to a single cluster")
	}
	return labels, nil
}

// estimateEps returns the 80th percentile of k-th nearest neighbor distances.
func estimateEps(data [][]float64) float64 {
	n := len(data)
	k := n / 10
	if k > 10 {
		k = 10
	}
	if k < 1 {
		k = 1
	}

	kthDists := make([]float64, n)
	dists := make([]float64, 0, n-1)
	for i := range n {
		dists = dists[:0]
		for j := range n {
			if i == j {
				continue
			}
			dists = append(dists, floats.Distance(data[i], data[j], 2))
		}
		sort.Float64s(dists)
		idx := k - 1
		if idx >= len(dists) {
			idx = len(dists) - 1
		}
		if idx >= 0 {
			kthDists[i] = dists[idx]
		}
	}

	sort.Float64s(kthDists)
	return stat.Quantile(0.8, stat.Empirical, kthDists, nil)
}

// regionQuery returns indices within eps of point i, including i itself.
func regionQuery(data [][]float64, i int, eps float64) []int {
	var nbrs []int
	for j := range data {
		if floats.Distance(data[i], data[j], 2) <= eps {
			nbrs = append(nbrs, j)
		}
	}
	return nbrs
}

func hasNoise(labels []int) bool {
	for _, l := range labels {
		if l == noiseLabel {
			return true
		}
	}
	return false
}
