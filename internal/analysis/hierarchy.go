package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// hierarchicalCluster performs single-linkage agglomerative clustering via a
// minimum spanning tree over feature distances: removing the k-1 longest MST
// edges leaves k connected components, which are exactly the single-linkage
// clusters. Cost is O(n^2), so meshes above maxVertices are refused and the
// ensemble continues without this method.
func hierarchicalCluster(data [][]float64, k, maxVertices int) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.New("hierarchical: no data")
	}
	if maxVertices > 0 && n > maxVertices {
		return nil, fmt.Errorf("hierarchical: %d vertices exceeds cap %d", n, maxVertices)
	}
	if k > n {
		k = n
	}
	if k < 2 {
		return nil, errors.New("hierarchical: need at least two clusters")
	}

	// Prim's algorithm
	type mstEdge struct {
		from, to int
		weight   float64
	}
	edges := make([]mstEdge, 0, n-1)

	inTree := make([]bool, n)
	bestDist := make([]float64, n)
	bestFrom := make([]int, n)
	for i := range bestDist {
		bestDist[i] = math.Inf(1)
		bestFrom[i] = -1
	}

	inTree[0] = true
	for j := 1; j < n; j++ {
		bestDist[j] = floats.Distance(data[0], data[j], 2)
		bestFrom[j] = 0
	}

	for len(edges) < n-1 {
		next, nextDist := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if !inTree[j] && bestDist[j] < nextDist {
				next, nextDist = j, bestDist[j]
			}
		}
		if next < 0 {
			break
		}
		inTree[next] = true
		edges = append(edges, mstEdge{from: bestFrom[next], to: next, weight: nextDist})

		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			d := floats.Distance(data[next], data[j], 2)
			if d < bestDist[j] {
				bestDist[j] = d
				bestFrom[j] = next
			}
		}
	}

	if len(edges) < n-1 {
		return nil, errors.New("hierarchical: spanning tree incomplete")
	}

	// Cut the k-1 longest edges; stable sort keeps ties deterministic
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return edges[order[a]].weight > edges[order[b]].weight })

	cut := make([]bool, len(edges))
	for i := 0; i < k-1 && i < len(order); i++ {
		cut[order[i]] = true
	}

	// Components of the remaining forest
	uf := newUnionFind(n)
	for i, e := range edges {
		if !cut[i] {
			uf.union(e.from, e.to)
		}
	}

	labels := make([]int, n)
	next := 0
	rootLabel := make(map[int]int)
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

	if distinctLabels(labels) < 2 {
		return nil, errors.New("hierarchical: collapsed to a single cluster")
	}
	return labels, nil
}
