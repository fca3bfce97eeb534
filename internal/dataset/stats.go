package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Mean returns sum/count, and 0 for an empty input so empty collections render
// as 0 instead of NaN in KPI tiles.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle element of a sorted copy, or the average of the
// two central elements for even-length input. 0 for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Percentile returns the linear-interpolated order statistic for p in [0,100]
// over a sorted copy of values. 0 for empty input.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Delta is the signed difference between the current and previous period
// aggregate.
func Delta(current, previous float64) float64 {
	return current - previous
}

// FormatDelta renders a delta with an explicit sign, "+" included for
// non-negative values, one decimal.
func FormatDelta(d float64) string {
	if d >= 0 {
		return fmt.Sprintf("+%.1f", d)
	}
	return fmt.Sprintf("%.1f", d)
}

// Rescale maps a raw 0–100 peer score onto the 0–10 display scale, rounded to
// one decimal.
func Rescale(raw float64) float64 {
	return math.Round(raw) / 10
}

// Clamp bounds v to [min, max]. Chart callers clamp before mapping since the
// coordinate mapper itself does not.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
