package analysis

// SmoothLabels removes isolated label islands by majority vote over mesh
// neighbors. A vertex switches to a neighboring label only when that label
// holds at least the majority fraction of its neighbors; ties and anything
// below the threshold keep the current label. Iteration stops at the first
// pass with no change, so a converged labeling passes through unchanged.
func SmoothLabels(labels []int, g *Graph, iterations int, majority float64) []int {
	out := make([]int, len(labels))
	copy(out, labels)
	if g == nil || iterations <= 0 {
		return out
	}

	next := make([]int, len(out))
	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i := range out {
			next[i] = out[i]
			neighbors := g.Neighbors(i)
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[int]int)
			for _, nb := range neighbors {
				counts[out[nb]]++
			}

			// Current label wins ties, so a vertex only moves on a
			// strict majority improvement.
			best, bestCount := out[i], counts[out[i]]
			for l, c := range counts {
				if c > bestCount || (c == bestCount && best != out[i] && l < best) {
					best, bestCount = l, c
				}
			}
			if best == out[i] {
				continue
			}
			if float64(bestCount) >= majority*float64(len(neighbors)) {
				next[i] = best
				changed = true
			}
		}
		out, next = next, out
		if !changed {
			break
		}
	}
	return out
}
