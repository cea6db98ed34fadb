package service

import (
	"errors"
	"fmt"

	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/store"
)

// Error handling principles:
// 1. Validation failures surface as *domain.ValidationError (API: 400)
// 2. Missing entities surface as store "not found" sentinels (API: 404)
// 3. Uniqueness conflicts surface as store "duplicate" sentinels (API: 400)
// 4. Anything else is wrapped in *InternalError (API: 500)
// Callers use errors.Is/errors.As to check for specific conditions.

// InternalError wraps unexpected failures (database outages, encoding
// bugs) that the caller cannot act on beyond retrying.
type InternalError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for InternalError.
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// NewInternalError creates a new InternalError.
func NewInternalError(operation, message string, err error) *InternalError {
	return &InternalError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// wrapUnexpected passes recognized domain and store conditions through
// unchanged so the API layer can map them, and wraps everything else in
// an InternalError.
func wrapUnexpected(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
		return err
	}

	return NewInternalError(operation, message, err)
}
