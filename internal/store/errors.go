package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrCareerNotFound, ErrSubjectNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a career with the same name).
	ErrDuplicate = errors.New("entity already exists")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrPeriodNotFound indicates that the requested academic period does not exist.
	ErrPeriodNotFound = fmt.Errorf("%w: academic period", ErrNotFound)

	// ErrCareerNotFound indicates that the requested career does not exist.
	ErrCareerNotFound = fmt.Errorf("%w: career", ErrNotFound)

	// ErrCurriculumNotFound indicates that the requested curriculum does not exist.
	ErrCurriculumNotFound = fmt.Errorf("%w: curriculum", ErrNotFound)

	// ErrSubjectNotFound indicates that the requested subject does not exist.
	ErrSubjectNotFound = fmt.Errorf("%w: subject", ErrNotFound)

	// ErrScheduleNotFound indicates that the requested schedule does not exist.
	ErrScheduleNotFound = fmt.Errorf("%w: schedule", ErrNotFound)

	// ErrNoteNotFound indicates that the requested note does not exist.
	ErrNoteNotFound = fmt.Errorf("%w: note", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "duplicate" errors, one per uniqueness key

	// ErrPeriodNameExists indicates an academic period with the name already exists.
	ErrPeriodNameExists = fmt.Errorf("%w: academic period name", ErrDuplicate)

	// ErrCareerNameExists indicates a career with the name already exists.
	ErrCareerNameExists = fmt.Errorf("%w: career name", ErrDuplicate)

	// ErrCurriculumExists indicates a curriculum already exists for the
	// (career, semester) pair.
	ErrCurriculumExists = fmt.Errorf("%w: curriculum for career and semester", ErrDuplicate)

	// ErrSubjectExists indicates a subject with the (name, period) pair already exists.
	ErrSubjectExists = fmt.Errorf("%w: subject name in period", ErrDuplicate)

	// ErrScheduleAulaTaken indicates another schedule occupies the
	// (aula, day, time) slot.
	ErrScheduleAulaTaken = fmt.Errorf("%w: classroom slot", ErrDuplicate)

	// ErrScheduleSubjectTaken indicates the subject already has a schedule
	// at the (day, time) slot.
	ErrScheduleSubjectTaken = fmt.Errorf("%w: subject slot", ErrDuplicate)

	// ErrNoteExists indicates a note already exists for the
	// (student, subject, period) triple.
	ErrNoteExists = fmt.Errorf("%w: note for student, subject and period", ErrDuplicate)

	// ErrEmailExists indicates a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "career", "subject")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
