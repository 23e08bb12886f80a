package windowing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Type names a supported window function
type Type string

const (
	TypeHamming     Type = "hamming"
	TypeHann        Type = "hann"
	TypeRectangular Type = "rectangular"
)

// Window is a precomputed set of window coefficients
type Window interface {
	Apply(signal []float64) ([]float64, error)
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// ParseType resolves a window name, case-insensitively. An empty name
// selects Hamming.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TypeHamming, nil
	case TypeHamming, TypeHann, TypeRectangular:
		return t, nil
	default:
		return "", fmt.Errorf("unknown window type %q", name)
	}
}

// New builds a symmetric window of the given type and size
func New(t Type, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	switch t {
	case TypeHamming, "":
		return NewHamming(size, true), nil
	case TypeHann:
		return NewHann(size, true), nil
	case TypeRectangular:
		return NewRectangular(size), nil
	default:
		return nil, fmt.Errorf("unknown window type %q", t)
	}
}

// Generate returns the coefficients of a symmetric window
func Generate(t Type, size int) ([]float64, error) {
	w, err := New(t, size)
	if err != nil {
		return nil, err
	}
	return w.GetCoefficients(), nil
}

// cosineSum fills a generalized cosine window a0 - a1*cos(2*pi*i/D).
// Symmetric windows use D = size-1, periodic ones D = size.
func cosineSum(size int, symmetric bool, a0, a1 float64) []float64 {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1
		return coefficients
	}

	denominator := float64(size)
	if symmetric {
		denominator = float64(size - 1)
	}

	for i := range size {
		coefficients[i] = a0 - a1*math.Cos(2*math.Pi*float64(i)/denominator)
	}
	return coefficients
}

func multiply(signal, coefficients []float64) ([]float64, error) {
	if err := checkLength(signal, len(coefficients)); err != nil {
		return nil, err
	}
	return floats.MulTo(make([]float64, len(signal)), signal, coefficients), nil
}

func multiplyInPlace(signal, coefficients []float64) error {
	if err := checkLength(signal, len(coefficients)); err != nil {
		return err
	}
	floats.Mul(signal, coefficients)
	return nil
}

func checkLength(signal []float64, size int) error {
	if len(signal) != size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), size)
	}
	return nil
}
