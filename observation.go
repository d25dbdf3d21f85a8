package ecokalman

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Observation is one time step of measurements across the k state components,
// with an explicit per-index mask marking which entries are present. Missing
// data is an expected input state, not an error: any subset of indices may be
// absent at any step.
type Observation struct {
	values   []float64
	observed []bool
}

// NewObservation builds an Observation from raw values, treating NaN as the
// missing-value sentinel used by upstream data sources.
func NewObservation(values []float64) Observation {
	vals := make([]float64, len(values))
	copy(vals, values)
	observed := make([]bool, len(values))
	for i, v := range values {
		observed[i] = !math.IsNaN(v)
	}
	return Observation{vals, observed}
}

// NewPartialObservation builds an Observation from values and an explicit
// mask, for callers whose missing markers are not representable as NaN.
func NewPartialObservation(values []float64, observed []bool) (Observation, error) {
	if len(values) != len(observed) {
		return Observation{}, fmt.Errorf("values (%d) and mask (%d) lengths must agree", len(values), len(observed))
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	mask := make([]bool, len(observed))
	copy(mask, observed)
	return Observation{vals, mask}, nil
}

// Len returns the number of state components covered by this observation.
func (o Observation) Len() int {
	return len(o.values)
}

// IsObserved returns whether index i carries a value.
func (o Observation) IsObserved(i int) bool {
	return o.observed[i]
}

// At returns the value at index i, or NaN if that index is missing.
func (o Observation) At(i int) float64 {
	if !o.observed[i] {
		return math.NaN()
	}
	return o.values[i]
}

// ObservedIndices returns the indices carrying a value, in increasing order.
func (o Observation) ObservedIndices() []int {
	idx := make([]int, 0, len(o.values))
	for i, ok := range o.observed {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// NumObserved returns the number of present values.
func (o Observation) NumObserved() int {
	n := 0
	for _, ok := range o.observed {
		if ok {
			n++
		}
	}
	return n
}

// IsEmpty returns whether every index is missing.
func (o Observation) IsEmpty() bool {
	return o.NumObserved() == 0
}

// SeriesFromMatrix converts a k×T data matrix, with NaN marking missing
// entries, into the T-step observation series consumed by Filter.Run.
func SeriesFromMatrix(data mat.Matrix) []Observation {
	k, t := data.Dims()
	series := make([]Observation, t)
	for j := 0; j < t; j++ {
		vals := make([]float64, k)
		for i := 0; i < k; i++ {
			vals[i] = data.At(i, j)
		}
		series[j] = NewObservation(vals)
	}
	return series
}
