package fitness

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks requests rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPrecondition marks an arithmetic precondition reached at runtime,
	// such as deriving a daily rate over a non-positive horizon.
	ErrPrecondition = errors.New("arithmetic precondition violated")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError with a formatted reason.
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
