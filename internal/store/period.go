package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// PeriodStore defines the interface for academic period persistence.
type PeriodStore interface {
	// Create saves a new academic period to the store.
	// Returns ErrPeriodNameExists if the name is already taken.
	Create(ctx context.Context, period *domain.AcademicPeriod) error

	// GetByID retrieves an academic period by its unique ID.
	// Returns ErrPeriodNotFound if the period does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error)

	// GetByName retrieves an academic period by its unique name.
	// Returns ErrPeriodNotFound if the period does not exist.
	GetByName(ctx context.Context, name string) (*domain.AcademicPeriod, error)

	// List retrieves all academic periods ordered by creation time.
	List(ctx context.Context) ([]*domain.AcademicPeriod, error)

	// Update modifies an existing academic period.
	// Returns ErrPeriodNotFound if the period does not exist.
	// Returns ErrPeriodNameExists if renaming to a taken name.
	Update(ctx context.Context, period *domain.AcademicPeriod) error

	// Delete removes an academic period from the store by its ID.
	// Returns ErrPeriodNotFound if the period does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PeriodStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) PeriodStore
}
