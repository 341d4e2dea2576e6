package core

import (
	"fmt"
	"math"
	"sort"
)

// Distribution1D is a piecewise-constant distribution over n discrete
// items. Sampling is a binary search over the cumulative weights, so the
// same uniform number always maps to the same item and pdf.
type Distribution1D struct {
	pdf []float64
	cdf []float64
}

// NewDistribution1D creates a distribution proportional to weights.
// Weights must be finite and non-negative. If they are all zero the distribution
// falls back to uniform.
func NewDistribution1D(weights []float64) (*Distribution1D, error) {
	total := 0.0
	for i, weight := range weights {
		if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("weight %d is invalid (%g)", i, weight)
		}
		total += weight
	}
	if math.IsInf(total, 0) {
		return nil, fmt.Errorf("weights overflow (total %g)", total)
	}

	n := len(weights)
	pdf := make([]float64, n)
	if total == 0 {
		// All weights are zero, use uniform distribution
		for i := range pdf {
			pdf[i] = 1.0 / float64(n)
		}
	} else {
		for i, weight := range weights {
			pdf[i] = weight / total
		}
	}

	cdf := make([]float64, n+1)
	for i := 0; i < n; i++ {
		cdf[i+1] = cdf[i] + pdf[i]
	}
	if n > 0 {
		cdf[n] = 1.0
	}

	return &Distribution1D{pdf: pdf, cdf: cdf}, nil
}

// Warp maps u in [0, 1) to an item index. Items with zero probability are
// never returned.
func (d *Distribution1D) Warp(u float64) int {
	n := len(d.pdf)
	if n == 0 {
		return -1
	}
	// First cdf entry strictly greater than u, minus one
	idx := sort.Search(n, func(i int) bool { return d.cdf[i+1] > u })
	if idx >= n {
		idx = n - 1
	}
	for idx > 0 && d.pdf[idx] == 0 {
		idx--
	}
	return idx
}

// Pdf returns the probability of selecting item i
func (d *Distribution1D) Pdf(i int) float64 {
	if i < 0 || i >= len(d.pdf) {
		return 0.0
	}
	return d.pdf[i]
}

// Len returns the number of items in the distribution
func (d *Distribution1D) Len() int {
	return len(d.pdf)
}

// String returns a string representation for debugging
func (d *Distribution1D) String() string {
	if len(d.pdf) == 0 {
		return "Distribution1D{empty}"
	}

	result := fmt.Sprintf("Distribution1D{%d items:\n", len(d.pdf))
	for i, p := range d.pdf {
		result += fmt.Sprintf("  [%d] %.1f%%\n", i, p*100)
	}
	result += "}"
	return result
}
