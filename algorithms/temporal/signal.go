package temporal

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
)

// Signal conditioning helpers for equidistant records. Times are located with
// common.IndexInEquidistant, so a time within half a sample of the record
// maps to its nearest sample. None of the helpers modify their inputs.

// RemoveMeanOffset subtracts the mean of the samples from the start of the
// record up to and including the sample nearest until.
func RemoveMeanOffset(signal, times []float64, until float64) ([]float64, error) {
	idx, err := sampleIndex(signal, times, until)
	if err != nil {
		return nil, err
	}

	offset := stat.Mean(signal[:idx+1], nil)
	out := slices.Clone(signal)
	floats.AddConst(-offset, out)
	return out, nil
}

// RemoveOffsetAt subtracts the value of the sample nearest at
func RemoveOffsetAt(signal, times []float64, at float64) ([]float64, error) {
	idx, err := sampleIndex(signal, times, at)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(signal)
	floats.AddConst(-signal[idx], out)
	return out, nil
}

// CutTimeDomain returns the samples from start to finish inclusive. start
// must map to an earlier sample than finish.
func CutTimeDomain(signal, times []float64, start, finish float64) (cutSignal, cutTimes []float64, err error) {
	from, err := sampleIndex(signal, times, start)
	if err != nil {
		return nil, nil, err
	}
	to, err := sampleIndex(signal, times, finish)
	if err != nil {
		return nil, nil, err
	}
	if from >= to {
		return nil, nil, fmt.Errorf("cut [%v, %v] selects no interval: %w", start, finish, common.ErrInvalidArgument)
	}

	return slices.Clone(signal[from : to+1]), slices.Clone(times[from : to+1]), nil
}

// ZeroPad extends the record by zeros samples of value 0, before or after
// the signal. The time axis is regenerated from times[0] and the original
// sample interval.
func ZeroPad(signal, times []float64, zeros int, before bool) (padded, paddedTimes []float64, err error) {
	if err := checkRecord(signal, times); err != nil {
		return nil, nil, err
	}
	if zeros < 0 {
		return nil, nil, fmt.Errorf("zero count must be >= 0, got %d: %w", zeros, common.ErrInvalidArgument)
	}

	dt := times[1] - times[0]
	t0 := times[0]
	if before {
		t0 -= float64(zeros) * dt
	}

	n := len(signal) + zeros
	paddedTimes = make([]float64, n)
	for i := range paddedTimes {
		paddedTimes[i] = t0 + float64(i)*dt
	}

	padded = make([]float64, n)
	if before {
		copy(padded[zeros:], signal)
	} else {
		copy(padded, signal)
	}
	return padded, paddedTimes, nil
}

// Scale returns signal multiplied by factor
func Scale(signal []float64, factor float64) []float64 {
	out := slices.Clone(signal)
	floats.Scale(factor, out)
	return out
}

func sampleIndex(signal, times []float64, t float64) (int, error) {
	if err := checkRecord(signal, times); err != nil {
		return -1, err
	}
	idx := common.IndexInEquidistant(times, t)
	if idx == -1 {
		return -1, fmt.Errorf("time %v outside record [%v, %v]: %w", t, times[0], times[len(times)-1], common.ErrInvalidArgument)
	}
	return idx, nil
}

func checkRecord(signal, times []float64) error {
	if len(signal) != len(times) {
		return fmt.Errorf("length mismatch: %d samples, %d times: %w", len(signal), len(times), common.ErrInvalidArgument)
	}
	if len(times) < 2 {
		return fmt.Errorf("need at least 2 samples, got %d: %w", len(times), common.ErrInvalidArgument)
	}
	return nil
}
