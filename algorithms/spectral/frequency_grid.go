package spectral

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
)

// NyquistIndex returns the index of the Nyquist bin in an n-point two-sided
// spectrum.
func NyquistIndex(n int) int {
	return n / 2
}

// OneSidedFrequencies returns the frequencies 0..Nyquist of an n-point
// transform of a signal sampled every dt: floor(n/2)+1 values spaced
// (1/dt)/n apart.
func OneSidedFrequencies(dt float64, n int) []float64 {
	if n <= 0 || dt <= 0 {
		return []float64{}
	}

	df := (1.0 / dt) / float64(n)
	frequencies := make([]float64, NyquistIndex(n)+1)
	for i := range frequencies {
		frequencies[i] = float64(i) * df
	}
	return frequencies
}

// OneSidedAmplitude returns |X[k]| for k in 0..Nyquist of a two-sided
// spectrum. The 0 Hz bin is halved, since one-sided folding does not double
// DC energy. With normalize set, the result is divided by its maximum.
func OneSidedAmplitude(spectrum []complex128, normalize bool) []float64 {
	if len(spectrum) == 0 {
		return []float64{}
	}

	amplitude := make([]float64, NyquistIndex(len(spectrum))+1)
	for i := range amplitude {
		amplitude[i] = cmplx.Abs(spectrum[i])
	}
	amplitude[0] /= 2

	if normalize {
		common.NormalizeToMax(amplitude)
	}
	return amplitude
}

// OneSidedAmplitude2D applies OneSidedAmplitude to every row. The normalize
// flag is shared by all rows, each normalized row is scaled by its own maximum.
func OneSidedAmplitude2D(spectra [][]complex128, normalize bool) [][]float64 {
	out := make([][]float64, len(spectra))
	for i, row := range spectra {
		out[i] = OneSidedAmplitude(row, normalize)
	}
	return out
}

// FrequencyGrid describes the bins of an n-point transform of a signal
// sampled every dt and implements band filters on two-sided spectra of that
// length.
type FrequencyGrid struct {
	dt          float64
	n           int
	frequencies []float64
}

// NewFrequencyGrid creates the grid for an n-point transform
func NewFrequencyGrid(dt float64, n int) (*FrequencyGrid, error) {
	if n < 1 {
		return nil, fmt.Errorf("transform length must be >= 1, got %d: %w", n, common.ErrInvalidArgument)
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("sample interval must be > 0, got %v: %w", dt, common.ErrInvalidArgument)
	}

	return &FrequencyGrid{
		dt:          dt,
		n:           n,
		frequencies: OneSidedFrequencies(dt, n),
	}, nil
}

// Len returns the transform length N
func (g *FrequencyGrid) Len() int { return g.n }

// SampleInterval returns dt
func (g *FrequencyGrid) SampleInterval() float64 { return g.dt }

// Resolution returns the bin spacing (1/dt)/N
func (g *FrequencyGrid) Resolution() float64 { return (1.0 / g.dt) / float64(g.n) }

// Nyquist returns the highest one-sided frequency on the grid
func (g *FrequencyGrid) Nyquist() float64 { return g.frequencies[len(g.frequencies)-1] }

// Frequencies returns a copy of the one-sided frequencies
func (g *FrequencyGrid) Frequencies() []float64 { return slices.Clone(g.frequencies) }

// Index returns the bin nearest to frequency, or -1 when it is off the grid
func (g *FrequencyGrid) Index(frequency float64) int {
	return common.IndexInEquidistant(g.frequencies, frequency)
}

// Amplitude extracts the one-sided amplitude of a spectrum on this grid
func (g *FrequencyGrid) Amplitude(spectrum []complex128, normalize bool) ([]float64, error) {
	if err := g.checkLength(spectrum); err != nil {
		return nil, err
	}
	return OneSidedAmplitude(spectrum, normalize), nil
}

func (g *FrequencyGrid) checkLength(spectrum []complex128) error {
	if len(spectrum) != g.n {
		return fmt.Errorf("spectrum has %d bins, grid expects %d: %w", len(spectrum), g.n, common.ErrInvalidArgument)
	}
	return nil
}

func (g *FrequencyGrid) inRange(frequency float64) bool {
	return frequency >= 0 && frequency <= g.Nyquist()
}
