package analysis

import "errors"

// heightBinCluster slices the normalized height column into k equal bins.
// It is the fallback that keeps the ensemble alive when the geometric
// methods fail, so a single occupied bin is a valid result here, not an
// error. Bin indices are reindexed to contiguous labels ordered bottom-up.
func heightBinCluster(heights []float64, k int) ([]int, error) {
	n := len(heights)
	if n == 0 {
		return nil, errors.New("heightbins: no data")
	}
	if k < 1 {
		k = 1
	}

	bins := make([]int, n)
	for i, h := range heights {
		b := int(h * float64(k))
		if b >= k {
			b = k - 1
		}
		if b < 0 {
			b = 0
		}
		bins[i] = b
	}

	// Contiguous relabel, preserving low-to-high order
	remap := make(map[int]int)
	nextLabel := 0
	for b := 0; b < k; b++ {
		for _, v := range bins {
			if v == b {
				remap[b] = nextLabel
				nextLabel++
				break
			}
		}
	}

	labels := make([]int, n)
	for i, b := range bins {
		labels[i] = remap[b]
	}
	return labels, nil
}
