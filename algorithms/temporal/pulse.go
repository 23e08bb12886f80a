package temporal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/logging"
)

// PulseFeatures holds the timing of a single pulse. Times of the level
// crossings are linearly interpolated between samples. When Valid is false
// only Amplitude, AmplitudeTime and Positive are meaningful.
type PulseFeatures struct {
	Amplitude     float64 `json:"amplitude"`
	AmplitudeTime float64 `json:"amplitude_time"`

	Level10     float64 `json:"level_10"`
	Level10Time float64 `json:"level_10_time"`

	Level50         float64 `json:"level_50"`
	Level50RiseTime float64 `json:"level_50_rise_time"`
	Level50FallTime float64 `json:"level_50_fall_time"`

	Level90     float64 `json:"level_90"`
	Level90Time float64 `json:"level_90_time"`

	RiseTime float64 `json:"rise_time"` // 10% to 90%
	FWHM     float64 `json:"fwhm"`

	Positive bool `json:"positive"`
	Valid    bool `json:"valid"`
}

// PulseAnalyzer measures rise time and FWHM of pulses
type PulseAnalyzer struct {
	logger logging.Logger
}

// NewPulseAnalyzer creates a new pulse analyzer
func NewPulseAnalyzer() *PulseAnalyzer {
	return &PulseAnalyzer{
		logger: logging.WithFields(logging.Fields{
			"component": "pulse_analyzer",
		}),
	}
}

// AnalyzePulse characterizes y sampled at the ascending equidistant times
// using a default analyzer.
func AnalyzePulse(time, y []float64) (PulseFeatures, error) {
	return NewPulseAnalyzer().Analyze(time, y)
}

// Analyze characterizes the pulse in y. The polarity is taken from whichever
// of max(y) and |min(y)| is larger (ties are positive); negative pulses are
// measured on -y and report negative amplitude and levels.
//
// The rising edge is searched forward from the last zero crossing before the
// peak, the falling 50% crossing backward from the end of the record. The
// record must therefore end below half amplitude.
func (pa *PulseAnalyzer) Analyze(time, y []float64) (PulseFeatures, error) {
	if len(time) != len(y) {
		return PulseFeatures{}, fmt.Errorf("length mismatch: %d times, %d values: %w", len(time), len(y), common.ErrInvalidArgument)
	}
	if len(y) < 2 {
		return PulseFeatures{}, fmt.Errorf("need at least 2 samples, got %d: %w", len(y), common.ErrInvalidArgument)
	}

	maxValue, _ := common.ArgMax(y)
	minValue, _ := common.ArgMin(y)

	var f PulseFeatures
	work := y
	f.Positive = maxValue >= -minValue
	if !f.Positive {
		work = make([]float64, len(y))
		for i, v := range y {
			work[i] = -v
		}
	}

	amplitude, peak := common.ArgMax(work)
	f.Amplitude = amplitude
	f.AmplitudeTime = time[peak]
	f.Level10 = 0.1 * amplitude
	f.Level50 = 0.5 * amplitude
	f.Level90 = 0.9 * amplitude

	pa.measure(&f, time, work, peak)

	if !f.Positive {
		f.Amplitude = -f.Amplitude
		f.Level10 = -f.Level10
		f.Level50 = -f.Level50
		f.Level90 = -f.Level90
	}

	pa.logger.Debug("Pulse analyzed", logging.Fields{
		"amplitude": f.Amplitude,
		"positive":  f.Positive,
		"valid":     f.Valid,
		"rise_time": f.RiseTime,
		"fwhm":      f.FWHM,
	})
	return f, nil
}

// measure fills the crossing times of a positive pulse. f.Valid stays false
// on the first crossing that cannot be located.
func (pa *PulseAnalyzer) measure(f *PulseFeatures, time, y []float64, peak int) {
	zero := common.SearchLeftFirstLower(y, 0, peak)
	if zero == -1 {
		zero = 0
	}

	// A crossing at index 0 has no sample before it to interpolate from
	d1 := common.SearchRightFirstHigher(y, f.Level10, zero)
	if d1 < 1 {
		pa.invalid("no 10% crossing on the rising edge")
		return
	}
	half1 := common.SearchRightFirstHigher(y, f.Level50, d1)
	if half1 == -1 {
		pa.invalid("no 50% crossing on the rising edge")
		return
	}
	d9 := common.SearchRightFirstHigher(y, f.Level90, half1)
	if d9 == -1 {
		pa.invalid("no 90% crossing on the rising edge")
		return
	}

	last := len(y) - 1
	switch {
	case y[last] == f.Level50:
		f.Level50FallTime = time[last]
	case y[last] < f.Level50:
		half2 := common.SearchLeftFirstHigher(y, f.Level50, last)
		if half2 == -1 {
			pa.invalid("no 50% crossing on the falling edge")
			return
		}
		f.Level50FallTime = common.XAtValue(time[half2], y[half2], time[half2+1], y[half2+1], f.Level50)
	default:
		pa.invalid("record ends above 50% of the amplitude")
		return
	}

	f.Level10Time = common.XAtValue(time[d1-1], y[d1-1], time[d1], y[d1], f.Level10)
	f.Level50RiseTime = common.XAtValue(time[half1-1], y[half1-1], time[half1], y[half1], f.Level50)
	f.Level90Time = common.XAtValue(time[d9-1], y[d9-1], time[d9], y[d9], f.Level90)

	f.RiseTime = f.Level90Time - f.Level10Time
	f.FWHM = f.Level50FallTime - f.Level50RiseTime
	f.Valid = true
}

func (pa *PulseAnalyzer) invalid(reason string) {
	pa.logger.Warn("Pulse features incomplete", logging.Fields{
		"reason": reason,
	})
}
