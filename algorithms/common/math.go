package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistics over sample slices, backed by gonum.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// ArgMax returns the maximum of data and the first index holding it.
// An empty slice returns (NaN, -1).
func ArgMax(data []float64) (float64, int) {
	if len(data) == 0 {
		return math.NaN(), -1
	}
	i := floats.MaxIdx(data)
	return data[i], i
}

// ArgMin returns the minimum of data and the first index holding it.
// An empty slice returns (NaN, -1).
func ArgMin(data []float64) (float64, int) {
	if len(data) == 0 {
		return math.NaN(), -1
	}
	i := floats.MinIdx(data)
	return data[i], i
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
