// Package stats computes descriptive statistics over score samples.
package stats

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics of a non-empty sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes the summary of values. NaN entries are ignored.
// Returns false when no usable values remain.
func Describe(values []float64) (Summary, bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Summary{}, false
	}

	sort.Float64s(clean)

	sum := 0.0
	for _, v := range clean {
		sum += v
	}

	return Summary{
		Count:  len(clean),
		Mean:   sum / float64(len(clean)),
		Median: median(clean),
		Min:    clean[0],
		Max:    clean[len(clean)-1],
	}, true
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the sample standard deviation (n-1 denominator), or false
// when fewer than two usable values remain.
func StdDev(values []float64) (float64, bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) < 2 {
		return 0, false
	}

	sum := 0.0
	for _, v := range clean {
		sum += v
	}
	mean := sum / float64(len(clean))

	var sq float64
	for _, v := range clean {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(clean)-1)), true
}

// Mean returns the arithmetic mean, or false for an empty sample.
func Mean(values []float64) (float64, bool) {
	s, ok := Describe(values)
	if !ok {
		return 0, false
	}
	return s.Mean, true
}

// Round1 rounds to one decimal place, the precision scores are published
// with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, used for percentage shares.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
