package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// CurriculumStore defines the interface for curriculum persistence.
type CurriculumStore interface {
	// Create saves a new curriculum to the store.
	// Returns ErrCurriculumExists if a curriculum already exists for the
	// (career, semester) pair.
	Create(ctx context.Context, curriculum *domain.Curriculum) error

	// GetByID retrieves a curriculum by its unique ID.
	// Returns ErrCurriculumNotFound if the curriculum does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Curriculum, error)

	// GetByCareerAndSemester retrieves the curriculum for a
	// (career, semester) pair. Returns ErrCurriculumNotFound if absent.
	GetByCareerAndSemester(ctx context.Context, careerID uuid.UUID, semester string) (*domain.Curriculum, error)

	// List retrieves all curricula ordered by creation time.
	List(ctx context.Context) ([]*domain.Curriculum, error)

	// Update modifies an existing curriculum, including its subject list.
	// Returns ErrCurriculumNotFound if the curriculum does not exist.
	// Returns ErrCurriculumExists if the update collides with another
	// curriculum's (career, semester) pair.
	Update(ctx context.Context, curriculum *domain.Curriculum) error

	// Delete removes a curriculum from the store by its ID.
	// Returns ErrCurriculumNotFound if the curriculum does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CurriculumStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CurriculumStore
}
