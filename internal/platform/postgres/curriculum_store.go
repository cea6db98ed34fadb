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

// PostgresCurriculumStore implements the store.CurriculumStore interface
// using a PostgreSQL database as the storage backend. The ordered subject
// list is stored as a JSONB document column; appends preserve order and
// do not deduplicate.
type PostgresCurriculumStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCurriculumStore creates a new PostgreSQL implementation of
// the CurriculumStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCurriculumStore(db store.DBTX, logger *slog.Logger) *PostgresCurriculumStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCurriculumStore{
		db:     db,
		logger: logger.With(slog.String("component", "curriculum_store")),
	}
}

// Ensure PostgresCurriculumStore implements store.CurriculumStore interface
var _ store.CurriculumStore = (*PostgresCurriculumStore)(nil)

// Create implements store.CurriculumStore.Create
// Returns store.ErrCurriculumExists if a curriculum already exists for
// the (career, semester) pair.
func (s *PostgresCurriculumStore) Create(ctx context.Context, curriculum *domain.Curriculum) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := curriculum.Validate(); err != nil {
		log.Warn("curriculum validation failed during create",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	subjects, err := marshalJSONB(curriculum.Subjects)
	if err != nil {
		log.Error("failed to encode subject list",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	query := `
		INSERT INTO curricula (id, career_id, semester, subjects, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		curriculum.ID,
		curriculum.CareerID,
		curriculum.Semester,
		subjects,
		curriculum.CreatedAt,
		curriculum.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during curriculum creation",
				slog.String("error", err.Error()),
				slog.String("career_id", curriculum.CareerID.String()),
				slog.String("semester", curriculum.Semester))
			return mapped
		}

		log.Error("failed to create curriculum",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	log.Info("curriculum created successfully",
		slog.String("curriculum_id", curriculum.ID.String()),
		slog.String("career_id", curriculum.CareerID.String()),
		slog.String("semester", curriculum.Semester))
	return nil
}

// GetByID implements store.CurriculumStore.GetByID
// Returns store.ErrCurriculumNotFound if the curriculum does not exist.
func (s *PostgresCurriculumStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Curriculum, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCareerAndSemester implements store.CurriculumStore.GetByCareerAndSemester
// Returns store.ErrCurriculumNotFound if no curriculum exists for the pair.
func (s *PostgresCurriculumStore) GetByCareerAndSemester(ctx context.Context, careerID uuid.UUID, semester string) (*domain.Curriculum, error) {
	return s.getOne(ctx, `WHERE career_id = $1 AND semester = $2`, careerID, semester)
}

func (s *PostgresCurriculumStore) getOne(ctx context.Context, where string, args ...any) (*domain.Curriculum, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, career_id, semester, subjects, created_at, updated_at
		FROM curricula
	` + where

	var curriculum domain.Curriculum
	var subjects []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&curriculum.ID,
		&curriculum.CareerID,
		&curriculum.Semester,
		&subjects,
		&curriculum.CreatedAt,
		&curriculum.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("curriculum not found")
			return nil, store.ErrCurriculumNotFound
		}
		log.Error("failed to get curriculum", slog.String("error", err.Error()))
		return nil, err
	}

	curriculum.Subjects, err = unmarshalJSONB[uuid.UUID](subjects)
	if err != nil {
		log.Error("failed to decode subject list",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return nil, err
	}

	return &curriculum, nil
}

// List implements store.CurriculumStore.List
// It retrieves all curricula ordered by creation time.
func (s *PostgresCurriculumStore) List(ctx context.Context) ([]*domain.Curriculum, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, career_id, semester, subjects, created_at, updated_at
		FROM curricula
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list curricula", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	curricula := []*domain.Curriculum{}
	for rows.Next() {
		var curriculum domain.Curriculum
		var subjects []byte
		err := rows.Scan(
			&curriculum.ID,
			&curriculum.CareerID,
			&curriculum.Semester,
			&subjects,
			&curriculum.CreatedAt,
			&curriculum.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan curriculum row", slog.String("error", err.Error()))
			return nil, err
		}

		curriculum.Subjects, err = unmarshalJSONB[uuid.UUID](subjects)
		if err != nil {
			log.Error("failed to decode subject list",
				slog.String("error", err.Error()),
				slog.String("curriculum_id", curriculum.ID.String()))
			return nil, err
		}

		curricula = append(curricula, &curriculum)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return curricula, nil
}

// Update implements store.CurriculumStore.Update
// It persists the curriculum's semester and subject list.
// Returns store.ErrCurriculumNotFound if the curriculum does not exist.
// Returns store.ErrCurriculumExists if the update collides with another
// curriculum's (career, semester) pair.
func (s *PostgresCurriculumStore) Update(ctx context.Context, curriculum *domain.Curriculum) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := curriculum.Validate(); err != nil {
		log.Warn("curriculum validation failed during update",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	subjects, err := marshalJSONB(curriculum.Subjects)
	if err != nil {
		log.Error("failed to encode subject list",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	curriculum.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE curricula
		SET career_id = $1, semester = $2, subjects = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		curriculum.CareerID,
		curriculum.Semester,
		subjects,
		curriculum.UpdatedAt,
		curriculum.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during curriculum update",
				slog.String("error", err.Error()),
				slog.String("curriculum_id", curriculum.ID.String()))
			return mapped
		}

		log.Error("failed to update curriculum",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", curriculum.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("curriculum not found for update",
			slog.String("curriculum_id", curriculum.ID.String()))
		return store.ErrCurriculumNotFound
	}

	log.Info("curriculum updated successfully",
		slog.String("curriculum_id", curriculum.ID.String()))
	return nil
}

// Delete implements store.CurriculumStore.Delete
// Returns store.ErrCurriculumNotFound if the curriculum does not exist.
func (s *PostgresCurriculumStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM curricula WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete curriculum",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("curriculum_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("curriculum not found for delete", slog.String("curriculum_id", id.String()))
		return store.ErrCurriculumNotFound
	}

	log.Info("curriculum deleted successfully", slog.String("curriculum_id", id.String()))
	return nil
}

// WithTx implements store.CurriculumStore.WithTx
// It returns a new CurriculumStore that uses the provided transaction.
func (s *PostgresCurriculumStore) WithTx(tx *sql.Tx) store.CurriculumStore {
	return &PostgresCurriculumStore{
		db:     tx,
		logger: s.logger,
	}
}
