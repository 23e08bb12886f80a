package spectral

import (
	"fmt"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
)

// Band filters zero bins of a two-sided spectrum in place. Bin i and its
// mirror N-i are always cleared together so the spectrum stays that of a
// real signal.

// Lowpass clears every bin from the cutoff bin up to Nyquist. Cutoffs
// outside [0, Nyquist] leave the spectrum untouched.
func (g *FrequencyGrid) Lowpass(spectrum []complex128, cutoff float64) error {
	if err := g.checkLength(spectrum); err != nil {
		return err
	}
	if !g.inRange(cutoff) {
		return nil
	}

	g.clear(spectrum, g.Index(cutoff), NyquistIndex(g.n))
	return nil
}

// Highpass clears DC and every bin from 1 up to the cutoff bin. Cutoffs
// outside [0, Nyquist] leave the spectrum untouched.
func (g *FrequencyGrid) Highpass(spectrum []complex128, cutoff float64) error {
	if err := g.checkLength(spectrum); err != nil {
		return err
	}
	if !g.inRange(cutoff) {
		return nil
	}

	g.clear(spectrum, 0, g.Index(cutoff))
	return nil
}

// Bandstop clears every bin from low to high inclusive. Both bounds must lie
// in [0, Nyquist] with low <= high.
func (g *FrequencyGrid) Bandstop(spectrum []complex128, low, high float64) error {
	if err := g.checkLength(spectrum); err != nil {
		return err
	}
	if low > high || !g.inRange(low) || !g.inRange(high) {
		return fmt.Errorf("band [%v, %v] Hz does not fit [0, %v] Hz: %w", low, high, g.Nyquist(), common.ErrInvalidArgument)
	}

	g.clear(spectrum, g.Index(low), g.Index(high))
	return nil
}

// clear zeroes bins from..to inclusive together with their mirrors. DC has
// no mirror: N-0 would be out of range, so it is handled on its own.
func (g *FrequencyGrid) clear(spectrum []complex128, from, to int) {
	if from == 0 {
		spectrum[0] = 0
		from = 1
	}
	for i := from; i <= to; i++ {
		spectrum[i] = 0
		spectrum[g.n-i] = 0
	}
}
