package spectral

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/logging"
)

// DefaultDropDB is the level drop that bounds the band measured by AnalyzeSpectrum.
const DefaultDropDB = 3.0

// SpectrumFeatures describes the band around the peak of an amplitude spectrum.
type SpectrumFeatures struct {
	Amplitude          float64 `json:"amplitude"`
	AmplitudeFrequency float64 `json:"amplitude_frequency"`
	Level              float64 `json:"level"` // amplitude * 10^(-drop/20)
	DropDB             float64 `json:"drop_db"`
	LeftFrequency      float64 `json:"left_frequency"`
	RightFrequency     float64 `json:"right_frequency"`
	Bandwidth          float64 `json:"bandwidth"`

	// LeftCrossed and RightCrossed are false when the spectrum never fell
	// below Level on that side and the border was pinned to the domain edge.
	LeftCrossed  bool `json:"left_crossed"`
	RightCrossed bool `json:"right_crossed"`
}

// AnalyzeSpectrum measures the -3dB band of an amplitude spectrum sampled on
// an ascending equidistant frequency axis.
func AnalyzeSpectrum(frequencies, amplitudes []float64) (SpectrumFeatures, error) {
	return AnalyzeSpectrumDrop(frequencies, amplitudes, DefaultDropDB)
}

// AnalyzeSpectrumDrop measures the band where amplitudes stay above the peak
// lowered by dropDB decibels (voltage ratio). Borders between samples are
// linearly interpolated.
func AnalyzeSpectrumDrop(frequencies, amplitudes []float64, dropDB float64) (SpectrumFeatures, error) {
	if len(frequencies) != len(amplitudes) {
		return SpectrumFeatures{}, fmt.Errorf("length mismatch: %d frequencies, %d amplitudes: %w",
			len(frequencies), len(amplitudes), common.ErrInvalidArgument)
	}
	if len(frequencies) < 2 {
		return SpectrumFeatures{}, fmt.Errorf("need at least 2 samples, got %d: %w", len(frequencies), common.ErrInvalidArgument)
	}
	if dropDB <= 0 || math.IsNaN(dropDB) {
		return SpectrumFeatures{}, fmt.Errorf("level drop must be > 0 dB, got %v: %w", dropDB, common.ErrInvalidArgument)
	}

	amplitude, peak := common.ArgMax(amplitudes)
	level := amplitude * common.DBToVoltageRatio(-dropDB)

	f := SpectrumFeatures{
		Amplitude:          amplitude,
		AmplitudeFrequency: frequencies[peak],
		Level:              level,
		DropDB:             dropDB,
	}

	if left := common.SearchLeftFirstLower(amplitudes, level, peak); left == -1 {
		f.LeftFrequency = frequencies[0]
	} else {
		f.LeftFrequency = common.XAtValue(frequencies[left], amplitudes[left], frequencies[left+1], amplitudes[left+1], level)
		f.LeftCrossed = true
	}

	if right := common.SearchRightFirstLower(amplitudes, level, peak); right == -1 {
		f.RightFrequency = frequencies[len(frequencies)-1]
	} else {
		f.RightFrequency = common.XAtValue(frequencies[right-1], amplitudes[right-1], frequencies[right], amplitudes[right], level)
		f.RightCrossed = true
	}

	f.Bandwidth = f.RightFrequency - f.LeftFrequency

	if !f.LeftCrossed || !f.RightCrossed {
		logging.WithFields(logging.Fields{
			"component":     "spectrum_analyzer",
			"left_crossed":  f.LeftCrossed,
			"right_crossed": f.RightCrossed,
		}).Debug("Band reaches the edge of the spectrum")
	}

	return f, nil
}
