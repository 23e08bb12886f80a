package common

import "slices"

// CloneJagged deep-copies a jagged 2D slice. Works for real and complex rows alike.
func CloneJagged[T any](rows [][]T) [][]T {
	if rows == nil {
		return nil
	}
	out := make([][]T, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// RealParts returns the real part of every element of a jagged complex slice.
func RealParts[C ~complex64 | ~complex128](rows [][]C) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = real(complex128(v))
		}
	}
	return out
}

// ColumnMeans averages a rectangular 2D slice down its first dimension,
// returning one mean per column. Returns nil for empty input.
func ColumnMeans(rows [][]float64) []float64 {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	means := make([]float64, len(rows[0]))
	for j := range means {
		sum := 0.0
		for i := range rows {
			sum += rows[i][j]
		}
		means[j] = sum / float64(len(rows))
	}
	return means
}
