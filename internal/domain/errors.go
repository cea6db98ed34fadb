package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or input fails
	// validation. This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidWeekday is returned when a day is not one of the seven
	// weekday names.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidTimeRange is returned when a time range does not match the
	// HH:MM-HH:MM format or its start is not strictly before its end.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrGradeOutOfRange is returned when a grade falls outside [0, 5].
	ErrGradeOutOfRange = errors.New("grade out of range")

	// ErrEmptyPatch is returned when a partial update supplies no fields.
	ErrEmptyPatch = errors.New("at least one field must be provided")
)

// ValidationError describes a field-level validation failure. It wraps
// ErrValidation so callers can match the whole class with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil the error unwraps to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
