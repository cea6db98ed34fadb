package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// SubjectStore defines the interface for subject persistence.
type SubjectStore interface {
	// Create saves a new subject to the store.
	// Returns ErrSubjectExists if the (name, period) pair is taken.
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByID retrieves a subject by its unique ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// GetByNameAndPeriod retrieves the subject with the given name inside
	// one academic period. Returns ErrSubjectNotFound if absent.
	GetByNameAndPeriod(ctx context.Context, name string, periodID uuid.UUID) (*domain.Subject, error)

	// CountByIDs returns how many of the given subject IDs exist. Used to
	// validate prerequisite and curriculum subject references in one query.
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)

	// List retrieves all subjects ordered by creation time.
	List(ctx context.Context) ([]*domain.Subject, error)

	// Update modifies an existing subject.
	// Returns ErrSubjectNotFound if the subject does not exist.
	// Returns ErrSubjectExists if the update collides with another
	// subject's (name, period) pair.
	Update(ctx context.Context, subject *domain.Subject) error

	// AppendEnrollment adds one enrollment entry to a subject and
	// increments its totalStudents counter in the same statement, so the
	// append and the counter can never diverge.
	// Returns ErrSubjectNotFound if the subject does not exist.
	AppendEnrollment(ctx context.Context, id uuid.UUID, enrollment domain.Enrollment) error

	// Delete removes a subject from the store by its ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new SubjectStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) SubjectStore
}
