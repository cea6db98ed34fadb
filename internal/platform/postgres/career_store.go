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

// PostgresCareerStore implements the store.CareerStore interface
// using a PostgreSQL database as the storage backend. Per-semester
// enrollment sets are stored as a JSONB document column.
type PostgresCareerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCareerStore creates a new PostgreSQL implementation of the
// CareerStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCareerStore(db store.DBTX, logger *slog.Logger) *PostgresCareerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCareerStore{
		db:     db,
		logger: logger.With(slog.String("component", "career_store")),
	}
}

// Ensure PostgresCareerStore implements store.CareerStore interface
var _ store.CareerStore = (*PostgresCareerStore)(nil)

// Create implements store.CareerStore.Create
// Returns store.ErrCareerNameExists if the name is already taken.
func (s *PostgresCareerStore) Create(ctx context.Context, career *domain.Career) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := career.Validate(); err != nil {
		log.Warn("career validation failed during create",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	enrolled, err := marshalJSONB(career.EnrolledStudents)
	if err != nil {
		log.Error("failed to encode enrolled students",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	query := `
		INSERT INTO careers (id, name, description, curriculum_id, enrolled_students, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		career.ID,
		career.Name,
		career.Description,
		nullableUUID(career.CurriculumID),
		enrolled,
		career.CreatedAt,
		career.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during career creation",
				slog.String("error", err.Error()),
				slog.String("career_name", career.Name))
			return mapped
		}

		log.Error("failed to create career",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	log.Info("career created successfully",
		slog.String("career_id", career.ID.String()),
		slog.String("career_name", career.Name))
	return nil
}

// GetByID implements store.CareerStore.GetByID
// Returns store.ErrCareerNotFound if the career does not exist.
func (s *PostgresCareerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Career, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByName implements store.CareerStore.GetByName
// Returns store.ErrCareerNotFound if the career does not exist.
func (s *PostgresCareerStore) GetByName(ctx context.Context, name string) (*domain.Career, error) {
	return s.getOne(ctx, `WHERE name = $1`, name)
}

func (s *PostgresCareerStore) getOne(ctx context.Context, where string, arg any) (*domain.Career, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, curriculum_id, enrolled_students, created_at, updated_at
		FROM careers
	` + where

	var career domain.Career
	var curriculumID uuid.NullUUID
	var enrolled []byte
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&career.ID,
		&career.Name,
		&career.Description,
		&curriculumID,
		&enrolled,
		&career.CreatedAt,
		&career.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("career not found")
			return nil, store.ErrCareerNotFound
		}
		log.Error("failed to get career", slog.String("error", err.Error()))
		return nil, err
	}

	if curriculumID.Valid {
		career.CurriculumID = &curriculumID.UUID
	}

	career.EnrolledStudents, err = unmarshalJSONB[domain.SemesterEnrollment](enrolled)
	if err != nil {
		log.Error("failed to decode enrolled students",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return nil, err
	}

	return &career, nil
}

// List implements store.CareerStore.List
// It retrieves all careers ordered by creation time.
func (s *PostgresCareerStore) List(ctx context.Context) ([]*domain.Career, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, curriculum_id, enrolled_students, created_at, updated_at
		FROM careers
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list careers", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	careers := []*domain.Career{}
	for rows.Next() {
		var career domain.Career
		var curriculumID uuid.NullUUID
		var enrolled []byte
		err := rows.Scan(
			&career.ID,
			&career.Name,
			&career.Description,
			&curriculumID,
			&enrolled,
			&career.CreatedAt,
			&career.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan career row", slog.String("error", err.Error()))
			return nil, err
		}

		if curriculumID.Valid {
			career.CurriculumID = &curriculumID.UUID
		}

		career.EnrolledStudents, err = unmarshalJSONB[domain.SemesterEnrollment](enrolled)
		if err != nil {
			log.Error("failed to decode enrolled students",
				slog.String("error", err.Error()),
				slog.String("career_id", career.ID.String()))
			return nil, err
		}

		careers = append(careers, &career)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return careers, nil
}

// Update implements store.CareerStore.Update
// It persists the career's name, description, curriculum link, and
// enrollment sets.
// Returns store.ErrCareerNotFound if the career does not exist.
// Returns store.ErrCareerNameExists if renaming to a taken name.
func (s *PostgresCareerStore) Update(ctx context.Context, career *domain.Career) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := career.Validate(); err != nil {
		log.Warn("career validation failed during update",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	enrolled, err := marshalJSONB(career.EnrolledStudents)
	if err != nil {
		log.Error("failed to encode enrolled students",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	career.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE careers
		SET name = $1, description = $2, curriculum_id = $3, enrolled_students = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		career.Name,
		career.Description,
		nullableUUID(career.CurriculumID),
		enrolled,
		career.UpdatedAt,
		career.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during career update",
				slog.String("error", err.Error()),
				slog.String("career_id", career.ID.String()))
			return mapped
		}

		log.Error("failed to update career",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("career_id", career.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("career not found for update",
			slog.String("career_id", career.ID.String()))
		return store.ErrCareerNotFound
	}

	log.Info("career updated successfully",
		slog.String("career_id", career.ID.String()))
	return nil
}

// Delete implements store.CareerStore.Delete
// Returns store.ErrCareerNotFound if the career does not exist.
func (s *PostgresCareerStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM careers WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete career",
			slog.String("error", err.Error()),
			slog.String("career_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("career_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("career not found for delete", slog.String("career_id", id.String()))
		return store.ErrCareerNotFound
	}

	log.Info("career deleted successfully", slog.String("career_id", id.String()))
	return nil
}

// WithTx implements store.CareerStore.WithTx
// It returns a new CareerStore that uses the provided transaction.
func (s *PostgresCareerStore) WithTx(tx *sql.Tx) store.CareerStore {
	return &PostgresCareerStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableUUID converts an optional UUID reference to its SQL form.
func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
