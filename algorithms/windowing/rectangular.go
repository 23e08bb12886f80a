package windowing

// Rectangular represents a rectangular (boxcar) window function
type Rectangular struct {
	size int
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	return &Rectangular{size: size}
}

// Apply returns a copy of signal
func (r *Rectangular) Apply(signal []float64) ([]float64, error) {
	if err := checkLength(signal, r.size); err != nil {
		return nil, err
	}
	windowed := make([]float64, r.size)
	copy(windowed, signal)
	return windowed, nil
}

// ApplyInPlace leaves signal unchanged after checking its length
func (r *Rectangular) ApplyInPlace(signal []float64) error {
	return checkLength(signal, r.size)
}

// GetCoefficients returns a slice of ones
func (r *Rectangular) GetCoefficients() []float64 {
	coeffs := make([]float64, r.size)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	return coeffs
}

// GetSize returns the window size
func (r *Rectangular) GetSize() int {
	return r.size
}

// GetType returns the window type
func (r *Rectangular) GetType() string {
	return string(TypeRectangular)
}
