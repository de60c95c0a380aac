package analysis

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const kmeansMaxIter = 100

// kmeansCluster partitions feature rows into k clusters. Initialization is a
// greedy farthest-point sweep from a seeded random start, so results are
// deterministic per seed.
func kmeansCluster(data [][]float64, k int, seed int64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.New("kmeans: no data")
	}
	if k > n {
		k = n
	}
	if k < 2 {
		return nil, errors.New("kmeans: need at least two clusters")
	}
	dims := len(data[0])

	rng := rand.New(rand.NewSource(seed))

	// Farthest-point initialization
	centroids := make([][]float64, 0, k)
	first := rng.Intn(n)
	centroids = append(centroids, append([]float64(nil), data[first]...))

	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = floats.Distance(data[i], centroids[0], 2)
	}

	for len(centroids) < k {
		best, bestDist := -1, -1.0
		for i, d := range minDist {
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		if bestDist <= 0 {
			// All remaining points coincide with a centroid
			return nil, errors.New("kmeans: degenerate data, all points identical")
		}
		centroids = append(centroids, append([]float64(nil), data[best]...))
		for i := range minDist {
			d := floats.Distance(data[i], centroids[len(centroids)-1], 2)
			minDist[i] = math.Min(minDist[i], d)
		}
	}

	labels := make([]int, n)
	counts := make([]int, k)
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dims)
	}

	for range kmeansMaxIter {
		changed := false
		for i, row := range data {
			best, bestDist := 0, math.Inf(1)
			for c, cent := range centroids {
				d := floats.Distance(row, cent, 2)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		for c := range k {
			counts[c] = 0
			for d := range dims {
				sums[c][d] = 0
			}
		}
		for i, row := range data {
			c := labels[i]
			counts[c]++
			floats.Add(sums[c], row)
		}
		for c := range k {
			if counts[c] == 0 {
				continue // Empty cluster keeps its previous centroid
			}
			for d := range dims {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	if distinctLabels(labels) < 2 {
		return nil, errors.New("kmeans: collapsed to a single cluster")
	}
	return labels, nil
}

// distinctLabels counts distinct label values, ignoring the noise label -1.
func distinctLabels(labels []int) int {
	seen := make(map[int]struct{})
	for _, l := range labels {
		if l >= 0 {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}
