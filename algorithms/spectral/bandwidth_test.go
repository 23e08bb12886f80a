package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/internal/testutil"
)

// triangle peaks at 1 at center and reaches 0 halfWidth away on each side.
func triangle(frequencies []float64, center, halfWidth float64) []float64 {
	out := make([]float64, len(frequencies))
	for i, f := range frequencies {
		out[i] = math.Max(0, 1-math.Abs(f-center)/halfWidth)
	}
	return out
}

func TestAnalyzeSpectrumTriangle(t *testing.T) {
	freq := testutil.Ramp(0, 0.5, 201)
	amp := triangle(freq, 50, 20)

	f, err := AnalyzeSpectrum(freq, amp)
	if err != nil {
		t.Fatal(err)
	}

	level := 0.7079457843841379
	testutil.RequireNearlyEqual(t, f.Amplitude, 1, 0)
	testutil.RequireNearlyEqual(t, f.AmplitudeFrequency, 50, 0)
	testutil.RequireNearlyEqual(t, f.Level, level, 1e-12)
	testutil.RequireNearlyEqual(t, f.LeftFrequency, 50-20*(1-level), 1e-9)
	testutil.RequireNearlyEqual(t, f.RightFrequency, 50+20*(1-level), 1e-9)
	testutil.RequireNearlyEqual(t, f.Bandwidth, 11.682168624634484, 1e-9)
	if !f.LeftCrossed || !f.RightCrossed {
		t.Fatalf("crossed flags = %v/%v, want true/true", f.LeftCrossed, f.RightCrossed)
	}
}

func TestAnalyzeSpectrumCustomDrop(t *testing.T) {
	freq := testutil.Ramp(0, 0.5, 201)
	amp := triangle(freq, 50, 20)

	f, err := AnalyzeSpectrumDrop(freq, amp, 20*math.Log10(2))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, f.Level, 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, f.Bandwidth, 20, 1e-9)
}

func TestAnalyzeSpectrumBandAtEdge(t *testing.T) {
	freq := testutil.Ramp(0, 1, 11)
	amp := testutil.Ramp(0, 0.1, 11) // rises to 1 at the last bin

	f, err := AnalyzeSpectrum(freq, amp)
	if err != nil {
		t.Fatal(err)
	}
	if f.RightCrossed {
		t.Fatal("right border should be pinned to the domain edge")
	}
	testutil.RequireNearlyEqual(t, f.RightFrequency, 10, 0)
	if !f.LeftCrossed {
		t.Fatal("left border should cross")
	}
	testutil.RequireNearlyEqual(t, f.LeftFrequency, 10*f.Level, 1e-9)
}

func TestAnalyzeSpectrumErrors(t *testing.T) {
	tests := []struct {
		name string
		freq []float64
		amp  []float64
		drop float64
	}{
		{"mismatch", []float64{0, 1}, []float64{1}, 3},
		{"too short", []float64{0}, []float64{1}, 3},
		{"non-positive drop", []float64{0, 1}, []float64{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AnalyzeSpectrumDrop(tt.freq, tt.amp, tt.drop); !errors.Is(err, common.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
