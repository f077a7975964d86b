package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidSample    = errors.New("invalid sample")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Degenerate-statistic results the caller must distinguish from a
	// genuine zero
	ErrUndefinedCorrelation = errors.New("correlation undefined: zero-variance input")
	ErrZeroDenominator      = errors.New("zero denominator in ratio")

	// Configuration errors
	ErrInvalidThreshold  = errors.New("invalid promotion threshold")
	ErrInvalidTrainRatio = errors.New("train ratio outside (0,1)")
)

// Error constructors with context
func NewInvalidSampleError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSample, reason)
}

func NewInsufficientDataError(need, got int) error {
	return fmt.Errorf("%w: need at least %d observations, got %d", ErrInsufficientData, need, got)
}

func NewZeroDenominatorError(ratio string) error {
	return fmt.Errorf("%w: %s", ErrZeroDenominator, ratio)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidSample) ||
		errors.Is(err, ErrInsufficientData)
}

func IsDegenerateResult(err error) bool {
	return errors.Is(err, ErrUndefinedCorrelation) ||
		errors.Is(err, ErrZeroDenominator)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrInvalidTrainRatio)
}
