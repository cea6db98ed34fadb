package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// CareerStore defines the interface for career persistence.
type CareerStore interface {
	// Create saves a new career to the store.
	// Returns ErrCareerNameExists if the name is already taken.
	Create(ctx context.Context, career *domain.Career) error

	// GetByID retrieves a career by its unique ID.
	// Returns ErrCareerNotFound if the career does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Career, error)

	// GetByName retrieves a career by its unique name.
	// Returns ErrCareerNotFound if the career does not exist.
	GetByName(ctx context.Context, name string) (*domain.Career, error)

	// List retrieves all careers ordered by creation time.
	List(ctx context.Context) ([]*domain.Career, error)

	// Update modifies an existing career, including its curriculum link
	// and enrolled-students sets.
	// Returns ErrCareerNotFound if the career does not exist.
	// Returns ErrCareerNameExists if renaming to a taken name.
	Update(ctx context.Context, career *domain.Career) error

	// Delete removes a career from the store by its ID.
	// Returns ErrCareerNotFound if the career does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CareerStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller;
	// career creation uses this to link the career and its curriculum
	// atomically.
	WithTx(tx *sql.Tx) CareerStore
}
