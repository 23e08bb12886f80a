package spectral

import (
	"errors"
	"testing"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
)

func newTestGrid(t *testing.T) *FrequencyGrid {
	t.Helper()
	g, err := NewFrequencyGrid(0.001, 8)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLowpass(t *testing.T) {
	g := newTestGrid(t)

	s := onesSpectrum(8)
	if err := g.Lowpass(s, 250); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), []int{0, 1, 7})

	s = onesSpectrum(8)
	if err := g.Lowpass(s, 0); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), nil)
}

func TestHighpass(t *testing.T) {
	g := newTestGrid(t)

	s := onesSpectrum(8)
	if err := g.Highpass(s, 250); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), []int{3, 4, 5})

	s = onesSpectrum(8)
	if err := g.Highpass(s, 0); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), []int{1, 2, 3, 4, 5, 6, 7})
}

func TestCutoffOutsideGridIsNoOp(t *testing.T) {
	g := newTestGrid(t)
	for _, cutoff := range []float64{-1, 600} {
		s := onesSpectrum(8)
		if err := g.Lowpass(s, cutoff); err != nil {
			t.Fatal(err)
		}
		if err := g.Highpass(s, cutoff); err != nil {
			t.Fatal(err)
		}
		requireBins(t, nonZeroBins(s), []int{0, 1, 2, 3, 4, 5, 6, 7})
	}
}

func TestBandstop(t *testing.T) {
	g := newTestGrid(t)

	s := onesSpectrum(8)
	if err := g.Bandstop(s, 125, 250); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), []int{0, 3, 4, 5})

	s = onesSpectrum(8)
	if err := g.Bandstop(s, 0, 500); err != nil {
		t.Fatal(err)
	}
	requireBins(t, nonZeroBins(s), nil)
}

func TestBandstopInvalidBand(t *testing.T) {
	g := newTestGrid(t)
	tests := []struct{ low, high float64 }{
		{300, 200},
		{-10, 200},
		{100, 900},
	}
	for _, tt := range tests {
		s := onesSpectrum(8)
		if err := g.Bandstop(s, tt.low, tt.high); !errors.Is(err, common.ErrInvalidArgument) {
			t.Errorf("Bandstop(%v, %v): err = %v", tt.low, tt.high, err)
		}
		requireBins(t, nonZeroBins(s), []int{0, 1, 2, 3, 4, 5, 6, 7})
	}
}

func TestFilterLengthMismatch(t *testing.T) {
	g := newTestGrid(t)
	if err := g.Lowpass(onesSpectrum(6), 100); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestFilterRoundTripStaysReal(t *testing.T) {
	g := newTestGrid(t)
	tr := NewGoDSPTransformer()

	signal := []float64{1, 3, -2, 0.5, 4, -1, 2, 0}
	spectrum := tr.Forward(ToComplex(signal))
	if err := g.Lowpass(spectrum, 250); err != nil {
		t.Fatal(err)
	}
	for i, v := range tr.Inverse(spectrum) {
		if im := imag(v); im > 1e-12 || im < -1e-12 {
			t.Fatalf("sample %d has imaginary part %v", i, im)
		}
	}
}
