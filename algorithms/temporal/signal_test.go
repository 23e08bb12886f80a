package temporal

import (
	"errors"
	"testing"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/internal/testutil"
)

func TestRemoveMeanOffset(t *testing.T) {
	times := testutil.Ramp(0, 0.5, 6)
	signal := []float64{1, 3, 5, 10, 10, 10}

	got, err := RemoveMeanOffset(signal, times, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{-2, 0, 2, 7, 7, 7}, 1e-12)
	if signal[0] != 1 {
		t.Fatal("input modified")
	}
}

func TestRemoveOffsetAt(t *testing.T) {
	times := testutil.Ramp(0, 0.5, 4)
	got, err := RemoveOffsetAt([]float64{2, 4, 6, 8}, times, 1.1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{-4, -2, 0, 2}, 0)
}

func TestCutTimeDomain(t *testing.T) {
	times := testutil.Ramp(0, 0.25, 9)
	signal := testutil.Ramp(10, 1, 9)

	cut, cutTimes, err := CutTimeDomain(signal, times, 0.5, 1.25)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, cut, []float64{12, 13, 14, 15}, 0)
	testutil.RequireSliceNearlyEqual(t, cutTimes, []float64{0.5, 0.75, 1, 1.25}, 0)

	cut[0] = 99
	if signal[2] != 12 {
		t.Fatal("cut shares storage with input")
	}
}

func TestCutTimeDomainErrors(t *testing.T) {
	times := testutil.Ramp(0, 1, 5)
	signal := make([]float64, 5)

	tests := []struct {
		name          string
		start, finish float64
	}{
		{"reversed", 3, 1},
		{"same sample", 2, 2.2},
		{"start outside", -2, 3},
		{"finish outside", 1, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := CutTimeDomain(signal, times, tt.start, tt.finish); !errors.Is(err, common.ErrInvalidArgument) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestZeroPad(t *testing.T) {
	times := []float64{1, 1.5, 2}
	signal := []float64{4, 5, 6}

	after, afterTimes, err := ZeroPad(signal, times, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, after, []float64{4, 5, 6, 0, 0}, 0)
	testutil.RequireSliceNearlyEqual(t, afterTimes, []float64{1, 1.5, 2, 2.5, 3}, 0)

	before, beforeTimes, err := ZeroPad(signal, times, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, before, []float64{0, 0, 4, 5, 6}, 0)
	testutil.RequireSliceNearlyEqual(t, beforeTimes, []float64{0, 0.5, 1, 1.5, 2}, 0)

	if _, _, err := ZeroPad(signal, times, -1, false); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("negative count: err = %v", err)
	}
}

func TestScale(t *testing.T) {
	signal := []float64{1, -2, 0.5}
	testutil.RequireSliceNearlyEqual(t, Scale(signal, -2), []float64{-2, 4, -1}, 0)
	if signal[0] != 1 {
		t.Fatal("input modified")
	}
}
