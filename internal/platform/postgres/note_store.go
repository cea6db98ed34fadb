package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/store"
)

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a new PostgreSQL implementation of the
// NoteStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure PostgresNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*PostgresNoteStore)(nil)

// Create implements store.NoteStore.Create
// Returns store.ErrNoteExists if a note already exists for the
// (student, subject, period) triple.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	query := `
		INSERT INTO notes (id, student_id, subject_id, grade, period_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		note.ID,
		note.StudentID,
		note.SubjectID,
		note.Grade,
		note.PeriodID,
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during note creation",
				slog.String("error", err.Error()),
				slog.String("student_id", note.StudentID.String()),
				slog.String("subject_id", note.SubjectID.String()))
			return mapped
		}

		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	log.Info("note created successfully",
		slog.String("note_id", note.ID.String()),
		slog.String("student_id", note.StudentID.String()),
		slog.String("subject_id", note.SubjectID.String()))
	return nil
}

// GetByID implements store.NoteStore.GetByID
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByStudentSubjectPeriod implements store.NoteStore.GetByStudentSubjectPeriod
// Returns store.ErrNoteNotFound if no note exists for the triple.
func (s *PostgresNoteStore) GetByStudentSubjectPeriod(ctx context.Context, studentID, subjectID, periodID, exclude uuid.UUID) (*domain.Note, error) {
	return s.getOne(ctx,
		`WHERE student_id = $1 AND subject_id = $2 AND period_id = $3 AND id <> $4`,
		studentID, subjectID, periodID, exclude)
}

func (s *PostgresNoteStore) getOne(ctx context.Context, where string, args ...any) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, student_id, subject_id, grade, period_id, created_at, updated_at
		FROM notes
	` + where

	var note domain.Note
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&note.ID,
		&note.StudentID,
		&note.SubjectID,
		&note.Grade,
		&note.PeriodID,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("note not found")
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note", slog.String("error", err.Error()))
		return nil, err
	}

	return &note, nil
}

// List implements store.NoteStore.List
// It retrieves all notes ordered by creation time.
func (s *PostgresNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, student_id, subject_id, grade, period_id, created_at, updated_at
		FROM notes
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notes := []*domain.Note{}
	for rows.Next() {
		var note domain.Note
		err := rows.Scan(
			&note.ID,
			&note.StudentID,
			&note.SubjectID,
			&note.Grade,
			&note.PeriodID,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan note row", slog.String("error", err.Error()))
			return nil, err
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return notes, nil
}

// Update implements store.NoteStore.Update
// Returns store.ErrNoteNotFound if the note does not exist.
// Returns store.ErrNoteExists if the update collides with another note's
// (student, subject, period) triple.
func (s *PostgresNoteStore) Update(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during update",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	note.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE notes
		SET student_id = $1, subject_id = $2, grade = $3, period_id = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		note.StudentID,
		note.SubjectID,
		note.Grade,
		note.PeriodID,
		note.UpdatedAt,
		note.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during note update",
				slog.String("error", err.Error()),
				slog.String("note_id", note.ID.String()))
			return mapped
		}

		log.Error("failed to update note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("note not found for update",
			slog.String("note_id", note.ID.String()))
		return store.ErrNoteNotFound
	}

	log.Info("note updated successfully",
		slog.String("note_id", note.ID.String()))
	return nil
}

// Delete implements store.NoteStore.Delete
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM notes WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("note not found for delete", slog.String("note_id", id.String()))
		return store.ErrNoteNotFound
	}

	log.Info("note deleted successfully", slog.String("note_id", id.String()))
	return nil
}

// WithTx implements store.NoteStore.WithTx
// It returns a new NoteStore that uses the provided transaction.
func (s *PostgresNoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	return &PostgresNoteStore{
		db:     tx,
		logger: s.logger,
	}
}
