package windowing

// Hamming represents a Hamming window function
type Hamming struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHamming creates a new Hamming window, 0.54 - 0.46*cos(2*pi*i/D)
// using the classic rounded coefficients rather than 0.53836/0.46164.
func NewHamming(size int, symmetric bool) *Hamming {
	return &Hamming{
		size:         size,
		symmetric:    symmetric,
		coefficients: cosineSum(size, symmetric, 0.54, 0.46),
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hamming) Apply(signal []float64) ([]float64, error) {
	return multiply(signal, h.coefficients)
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hamming) ApplyInPlace(signal []float64) error {
	return multiplyInPlace(signal, h.coefficients)
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hamming) GetCoefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// GetSize returns the window size
func (h *Hamming) GetSize() int {
	return h.size
}

// GetType returns the window type
func (h *Hamming) GetType() string {
	return string(TypeHamming)
}
