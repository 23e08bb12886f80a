package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
)

// MagnitudeStats summarizes the peak magnitudes of a set of series, e.g. a
// batch of recorded pulses.
type MagnitudeStats struct {
	// Magnitudes holds max(max(s), |min(s)|) for every series
	Magnitudes []float64 `json:"magnitudes"`

	// Positive reports whether the magnitude of a series came from its
	// maximum. Ties count as positive.
	Positive []bool `json:"positive"`

	// AscendingOrder lists series indexes sorted by magnitude. Equal
	// magnitudes keep their input order.
	AscendingOrder []int `json:"ascending_order"`

	// SameSign is true when every magnitude came from the same polarity.
	// A tied series matches either polarity here.
	SameSign bool `json:"same_sign"`

	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // sample (n-1) standard deviation
}

// AnalyzeMagnitudes computes MagnitudeStats over series. Every series must
// hold at least one sample.
func AnalyzeMagnitudes(series [][]float64) (MagnitudeStats, error) {
	if len(series) == 0 {
		return MagnitudeStats{}, fmt.Errorf("no series given: %w", common.ErrInvalidArgument)
	}

	s := MagnitudeStats{
		Magnitudes: make([]float64, len(series)),
		Positive:   make([]bool, len(series)),
	}

	allPositive, allNegative := true, true
	for i, values := range series {
		if len(values) == 0 {
			return MagnitudeStats{}, fmt.Errorf("series %d is empty: %w", i, common.ErrInvalidArgument)
		}

		maxValue := floats.Max(values)
		minAbs := math.Abs(floats.Min(values))
		s.Magnitudes[i] = math.Max(maxValue, minAbs)
		s.Positive[i] = maxValue >= minAbs

		if s.Magnitudes[i] != maxValue {
			allPositive = false
		}
		if s.Magnitudes[i] != minAbs {
			allNegative = false
		}
	}
	s.SameSign = allPositive || allNegative

	s.Mean = stat.Mean(s.Magnitudes, nil)
	if len(s.Magnitudes) > 1 {
		s.StdDev = stat.StdDev(s.Magnitudes, nil)
	}

	s.AscendingOrder = make([]int, len(series))
	for i := range s.AscendingOrder {
		s.AscendingOrder[i] = i
	}
	sort.SliceStable(s.AscendingOrder, func(a, b int) bool {
		return s.Magnitudes[s.AscendingOrder[a]] < s.Magnitudes[s.AscendingOrder[b]]
	})

	return s, nil
}

// Sorted returns the magnitudes in ascending order
func (s MagnitudeStats) Sorted() []float64 {
	out := make([]float64, len(s.AscendingOrder))
	for i, idx := range s.AscendingOrder {
		out[i] = s.Magnitudes[idx]
	}
	return out
}

// Largest returns the index of the series with the largest magnitude, or -1
// when there are none.
func (s MagnitudeStats) Largest() int {
	if len(s.AscendingOrder) == 0 {
		return -1
	}
	return s.AscendingOrder[len(s.AscendingOrder)-1]
}

// CoefficientOfVariation returns StdDev/Mean, or NaN for a zero mean
func (s MagnitudeStats) CoefficientOfVariation() float64 {
	if s.Mean == 0 {
		return math.NaN()
	}
	return s.StdDev / s.Mean
}
