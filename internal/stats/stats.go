// Package stats holds the small set of descriptive statistics the cleaning
// transforms need. All functions treat an empty slice as having statistic 0.
package stats

import (
	"math"
	"slices"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// Std computes the population standard deviation (ddof = 0).
func Std(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	mean := Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := slices.Clone(x)
	slices.Sort(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks.
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := slices.Clone(x)
	slices.Sort(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// Quartiles returns the 25th and 75th percentiles.
func Quartiles(x []float64) (q1, q3 float64) {
	return Percentile(x, 25), Percentile(x, 75)
}

// ModeIndex returns the index into keys of the most frequent key. Ties go to
// the key that sorts first under less. It returns -1 for an empty slice.
func ModeIndex[K comparable](keys []K, less func(a, b K) bool) int {
	if len(keys) == 0 {
		return -1
	}
	counts := make(map[K]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	best := 0
	for i, k := range keys {
		c, bc := counts[k], counts[keys[best]]
		if c > bc || (c == bc && less(k, keys[best])) {
			best = i
		}
	}
	return best
}
