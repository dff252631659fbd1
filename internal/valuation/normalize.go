package valuation

import "sort"

const (
	maxSpreadRatio = 100
	clampFloor     = 0.01
	clampCeiling   = 100
)

// Normalize compresses method values toward their median when the positive
// values span more than two orders of magnitude. Zero values are left as is.
// The input map is not modified.
func Normalize(values map[Method]float64) map[Method]float64 {
	out := make(map[Method]float64, len(values))
	positives := make([]float64, 0, len(values))
	for m, v := range values {
		out[m] = v
		if v > 0 {
			positives = append(positives, v)
		}
	}
	if len(positives) == 0 {
		return out
	}

	sort.Float64s(positives)
	lo, hi := positives[0], positives[len(positives)-1]
	if hi/lo <= maxSpreadRatio {
		return out
	}

	med := median(positives)
	floor, ceiling := med*clampFloor, med*clampCeiling
	for m, v := range out {
		if v == 0 {
			continue
		}
		switch {
		case v < floor:
			out[m] = floor
		case v > ceiling:
			out[m] = ceiling
		}
	}
	return out
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
