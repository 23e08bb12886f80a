package common

import (
	"fmt"
	"math"
	"slices"
)

// Series is an immutable set of (x, y) samples with strictly ascending x.
// A Series built with NewEquidistantSeries interpolates with the O(1)
// segment lookup, any other Series scans for the bracketing segment.
type Series struct {
	x           []float64
	y           []float64
	equidistant bool
}

// NewSeries copies x and y into a new Series. x must be strictly ascending,
// both slices must have the same length and at least two samples.
func NewSeries(x, y []float64) (*Series, error) {
	if err := validatePair(x, y); err != nil {
		return nil, err
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("x must be strictly ascending, x[%d]=%v after x[%d]=%v: %w",
				i, x[i], i-1, x[i-1], ErrInvalidArgument)
		}
	}

	return &Series{
		x: slices.Clone(x),
		y: slices.Clone(y),
	}, nil
}

// NewEquidistantSeries is NewSeries with the additional requirement that every
// spacing matches the first one within the relative tolerance tol.
func NewEquidistantSeries(x, y []float64, tol float64) (*Series, error) {
	s, err := NewSeries(x, y)
	if err != nil {
		return nil, err
	}

	increment := x[1] - x[0]
	for i := 2; i < len(x); i++ {
		if math.Abs((x[i]-x[i-1])-increment) > tol*increment {
			return nil, fmt.Errorf("x is not equidistant at index %d: %w", i, ErrInvalidArgument)
		}
	}
	s.equidistant = true

	return s, nil
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.x) }

// X returns a copy of the x values.
func (s *Series) X() []float64 { return slices.Clone(s.x) }

// Y returns a copy of the y values.
func (s *Series) Y() []float64 { return slices.Clone(s.y) }

// Equidistant reports whether the series was validated as evenly spaced.
func (s *Series) Equidistant() bool { return s.equidistant }

// At returns the piecewise-linear value at x.
func (s *Series) At(x float64) (float64, error) {
	if s.equidistant {
		return InterpolateEquidistant(s.x, s.y, x)
	}
	return Interpolate(s.x, s.y, x)
}

// InterpolateEquidistant returns the piecewise-linear y at x for ascending,
// evenly spaced xValues. The segment is found by floor division.
func InterpolateEquidistant(xValues, yValues []float64, x float64) (float64, error) {
	if err := checkDomain(xValues, yValues, x); err != nil {
		return 0, err
	}

	last := len(xValues) - 1
	if x == xValues[last] {
		return yValues[last], nil
	}

	increment := xValues[1] - xValues[0]
	segment := int(math.Floor((x - xValues[0]) / increment))
	segment = min(max(segment, 0), last-1)
	// floor division can land one segment off when x sits on a sample
	if segment < last-1 && x >= xValues[segment+1] {
		segment++
	} else if segment > 0 && x < xValues[segment] {
		segment--
	}

	return lineAt(xValues, yValues, segment, x), nil
}

// Interpolate returns the piecewise-linear y at x for ascending xValues with
// arbitrary spacing.
func Interpolate(xValues, yValues []float64, x float64) (float64, error) {
	if err := checkDomain(xValues, yValues, x); err != nil {
		return 0, err
	}

	last := len(xValues) - 1
	if x == xValues[last] {
		return yValues[last], nil
	}

	return lineAt(xValues, yValues, segmentStart(xValues, x), x), nil
}

// SegmentEndpoints returns the pair of x values that bracket x. At the upper
// boundary the last two values are returned.
func SegmentEndpoints(xValues []float64, x float64) (left, right float64, err error) {
	if len(xValues) < 2 {
		return 0, 0, fmt.Errorf("need at least 2 samples, got %d: %w", len(xValues), ErrInvalidArgument)
	}
	if x < xValues[0] || x > xValues[len(xValues)-1] {
		return 0, 0, fmt.Errorf("x=%v outside [%v, %v]: %w", x, xValues[0], xValues[len(xValues)-1], ErrOutOfRange)
	}

	last := len(xValues) - 1
	if x == xValues[last] {
		return xValues[last-1], xValues[last], nil
	}

	i := segmentStart(xValues, x)
	return xValues[i], xValues[i+1], nil
}

// XAtValue returns the x at which the line through (x1, y1) and (x2, y2)
// reaches y. x1 must differ from x2 and y1 from y2.
func XAtValue(x1, y1, x2, y2, y float64) float64 {
	a := (y2 - y1) / (x2 - x1)
	b := y1 - a*x1
	return (y - b) / a
}

// segmentStart returns the first i with xValues[i+1] > x. x is in range and
// below the last sample.
func segmentStart(xValues []float64, x float64) int {
	for i := 0; i < len(xValues)-1; i++ {
		if xValues[i+1] > x {
			return i
		}
	}
	return len(xValues) - 2
}

func lineAt(xValues, yValues []float64, i int, x float64) float64 {
	a := (yValues[i+1] - yValues[i]) / (xValues[i+1] - xValues[i])
	return yValues[i] + a*(x-xValues[i])
}

func checkDomain(xValues, yValues []float64, x float64) error {
	if err := validatePair(xValues, yValues); err != nil {
		return err
	}
	if x < xValues[0] || x > xValues[len(xValues)-1] {
		return fmt.Errorf("x=%v outside [%v, %v]: %w", x, xValues[0], xValues[len(xValues)-1], ErrOutOfRange)
	}
	return nil
}

func validatePair(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("length mismatch: %d x values, %d y values: %w", len(x), len(y), ErrInvalidArgument)
	}
	if len(x) < 2 {
		return fmt.Errorf("need at least 2 samples, got %d: %w", len(x), ErrInvalidArgument)
	}
	return nil
}
