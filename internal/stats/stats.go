// Package stats holds the small statistical kernel behind pkg/missing:
// mean and median over float64 samples, plus a mode that works for cells
// of any type.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs. NaN for an empty slice.
func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// Median returns the middle value of xs, averaging the two central samples
// for even lengths.
func Median(xs []float64) float64 {
	sorted := sortedCopy(xs)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// ModeAny returns the most frequent non-nil value in cells, breaking ties
// in favor of the value seen first. The second result is false when every
// cell is nil.
func ModeAny(cells []any) (any, bool) {
	counts := make(map[any]int, len(cells))
	var order []any
	for _, v := range cells {
		if v == nil {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return nil, false
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

func sortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return sorted
}
