package common

import "errors"

// Error classes shared by every algorithm package. Call sites wrap them with
// context; callers match with errors.Is.
var (
	// ErrInvalidArgument reports malformed call parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports an interpolation query outside the sampled domain.
	// No extrapolation is ever performed.
	ErrOutOfRange = errors.New("value out of range")

	// ErrComputationLimitExceeded reports an iterative solver that ran out of steps.
	ErrComputationLimitExceeded = errors.New("computation limit exceeded")
)
