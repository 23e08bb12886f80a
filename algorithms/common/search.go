package common

import "math"

// Directional threshold-crossing search.
//
// All four searches start at start and step one index at a time while the
// sample does not cross value (the comparison is non-strict, so samples equal
// to value keep the search moving). The first index holding a strict crossing
// is returned. -1 is returned when the boundary of the array is reached
// without a crossing, or when start is not a valid index.

// SearchLeftFirstLower walks left from start and returns the first index
// whose sample is lower than value.
func SearchLeftFirstLower(array []float64, value float64, start int) int {
	if start < 0 || start >= len(array) {
		return -1
	}
	i := start
	for value <= array[i] {
		if i == 0 {
			return -1
		}
		i--
	}
	return i
}

// SearchLeftFirstHigher walks left from start and returns the first index
// whose sample is higher than value.
func SearchLeftFirstHigher(array []float64, value float64, start int) int {
	if start < 0 || start >= len(array) {
		return -1
	}
	i := start
	for value >= array[i] {
		if i == 0 {
			return -1
		}
		i--
	}
	return i
}

// SearchRightFirstLower walks right from start and returns the first index
// whose sample is lower than value.
func SearchRightFirstLower(array []float64, value float64, start int) int {
	if start < 0 || start >= len(array) {
		return -1
	}
	i := start
	for value <= array[i] {
		if i == len(array)-1 {
			return -1
		}
		i++
	}
	return i
}

// SearchRightFirstHigher walks right from start and returns the first index
// whose sample is higher than value.
func SearchRightFirstHigher(array []float64, value float64, start int) int {
	if start < 0 || start >= len(array) {
		return -1
	}
	i := start
	for value >= array[i] {
		if i == len(array)-1 {
			return -1
		}
		i++
	}
	return i
}

// IndexInEquidistant maps value to the nearest index of an ascending
// equidistant array. The increment is taken from the first two samples.
//
// Values up to half an increment outside the span still map to the first or
// last index; anything further out returns -1. A single-element array always
// yields 0 and an empty array yields -1.
func IndexInEquidistant(array []float64, value float64) int {
	switch len(array) {
	case 0:
		return -1
	case 1:
		return 0
	}

	increment := array[1] - array[0]
	if value > array[len(array)-1]+increment/2 {
		return -1
	}
	if value < array[0]-increment/2 {
		return -1
	}

	index := int(math.Round((value - array[0]) / increment))
	return min(max(index, 0), len(array)-1)
}
