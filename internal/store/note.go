package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// NoteStore defines the interface for note (grade) persistence.
type NoteStore interface {
	// Create saves a new note to the store.
	// Returns ErrNoteExists if a note already exists for the
	// (student, subject, period) triple.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// GetByStudentSubjectPeriod retrieves the note for a
	// (student, subject, period) triple, excluding the given note ID
	// (uuid.Nil to exclude nothing).
	// Returns ErrNoteNotFound if no such note exists.
	GetByStudentSubjectPeriod(ctx context.Context, studentID, subjectID, periodID, exclude uuid.UUID) (*domain.Note, error)

	// List retrieves all notes ordered by creation time.
	List(ctx context.Context) ([]*domain.Note, error)

	// Update modifies an existing note.
	// Returns ErrNoteNotFound if the note does not exist.
	// Returns ErrNoteExists if the update collides with another note's
	// (student, subject, period) triple.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note from the store by its ID.
	// Returns ErrNoteNotFound if the note does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new NoteStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) NoteStore
}
