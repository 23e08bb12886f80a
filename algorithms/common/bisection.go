package common

import (
	"fmt"
	"math"
)

// BisectionProgress is reported to BisectionConfig.OnProgress while a root
// search is running.
type BisectionProgress struct {
	Step    int     // completed halving steps
	Percent int     // rough completion, 100*Step/MaxSteps
	Lower   float64 // current bracket
	Upper   float64
}

// BisectionConfig controls Bisect.
type BisectionConfig struct {
	Tolerance float64 // bracket width at which the search stops
	MaxSteps  int     // halving budget, exceeded -> ErrComputationLimitExceeded

	// ProgressStep is the minimum percentage advance between two OnProgress
	// calls. OnProgress may be nil.
	ProgressStep int
	OnProgress   func(BisectionProgress)
}

// DefaultBisectionConfig returns a config with a 1e-9 tolerance and a budget
// large enough for any float64 bracket.
func DefaultBisectionConfig() BisectionConfig {
	return BisectionConfig{
		Tolerance:    1e-9,
		MaxSteps:     1100,
		ProgressStep: 10,
	}
}

// Bisect finds a root of f inside [lower, upper] by repeated halving.
// f(lower) and f(upper) must not have the same sign.
func Bisect(f func(float64) float64, lower, upper float64, cfg BisectionConfig) (float64, error) {
	if upper <= lower {
		return 0, fmt.Errorf("bracket [%v, %v] is empty: %w", lower, upper, ErrInvalidArgument)
	}
	if cfg.Tolerance <= 0 || math.IsNaN(cfg.Tolerance) {
		return 0, fmt.Errorf("tolerance must be > 0, got %v: %w", cfg.Tolerance, ErrInvalidArgument)
	}
	if cfg.MaxSteps <= 0 {
		return 0, fmt.Errorf("max steps must be > 0, got %d: %w", cfg.MaxSteps, ErrInvalidArgument)
	}
	if f(lower)*f(upper) > 0 {
		return 0, fmt.Errorf("no sign change over [%v, %v]: %w", lower, upper, ErrInvalidArgument)
	}

	reported := 0
	step := 0
	for upper-lower >= cfg.Tolerance {
		middle := (lower + upper) / 2
		if f(lower)*f(middle) < 0 {
			upper = middle
		} else {
			lower = middle
		}

		step++
		if step > cfg.MaxSteps {
			return 0, fmt.Errorf("bisection did not converge in %d steps: %w", cfg.MaxSteps, ErrComputationLimitExceeded)
		}

		if cfg.OnProgress != nil {
			percent := 100 * step / cfg.MaxSteps
			if percent-reported > cfg.ProgressStep {
				reported = percent
				cfg.OnProgress(BisectionProgress{
					Step:    step,
					Percent: percent,
					Lower:   lower,
					Upper:   upper,
				})
			}
		}
	}

	return (lower + upper) / 2, nil
}
