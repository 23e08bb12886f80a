package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizationType defines normalization method
type NormalizationType int

const (
	// MaxValue divides by the largest sample (amplitude spectra are non-negative).
	MaxValue NormalizationType = iota
	// PeakAbs divides by the largest absolute sample.
	PeakAbs
)

// Normalizer scales sample slices to a unit reference
type Normalizer struct {
	method NormalizationType
}

// NewNormalizer creates a new normalizer
func NewNormalizer(method NormalizationType) *Normalizer {
	return &Normalizer{
		method: method,
	}
}

// Normalize returns a normalized copy of signal
func (n *Normalizer) Normalize(signal []float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	n.NormalizeInPlace(out)
	return out
}

// NormalizeInPlace scales signal in place and returns the reference it was
// divided by. A zero reference leaves signal untouched and returns 0.
func (n *Normalizer) NormalizeInPlace(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	ref := n.reference(signal)
	if ref == 0 || math.IsNaN(ref) {
		return 0
	}

	for i := range signal {
		signal[i] /= ref
	}
	return ref
}

func (n *Normalizer) reference(signal []float64) float64 {
	switch n.method {
	case PeakAbs:
		return math.Max(math.Abs(floats.Max(signal)), math.Abs(floats.Min(signal)))
	default:
		return floats.Max(signal)
	}
}

// NormalizeToMax divides signal in place by its maximum value.
func NormalizeToMax(signal []float64) float64 {
	return NewNormalizer(MaxValue).NormalizeInPlace(signal)
}
