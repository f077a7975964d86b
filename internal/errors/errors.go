package errors

import (
	"errors"
	"fmt"

	"edgegate/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, classifying domain
// sentinels into their boundary codes.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise classifies
// the underlying domain sentinel.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeFor(err)
}

// Error codes surfaced at the CLI and API boundaries
const (
	CodeInvalidSample        = "INVALID_SAMPLE"
	CodeInsufficientData     = "INSUFFICIENT_DATA"
	CodeUndefinedCorrelation = "UNDEFINED_CORRELATION"
	CodeZeroDenominator      = "ZERO_DENOMINATOR"
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeDataSourceError      = "DATA_SOURCE_ERROR"
	CodeInternalError        = "INTERNAL_ERROR"
)

// CodeFor maps a domain error onto its boundary code.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidSample):
		return CodeInvalidSample
	case errors.Is(err, core.ErrInsufficientData):
		return CodeInsufficientData
	case errors.Is(err, core.ErrUndefinedCorrelation):
		return CodeUndefinedCorrelation
	case errors.Is(err, core.ErrZeroDenominator):
		return CodeZeroDenominator
	case core.IsConfigError(err):
		return CodeConfigInvalid
	default:
		return CodeInternalError
	}
}
