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

// PostgresPeriodStore implements the store.PeriodStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPeriodStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPeriodStore creates a new PostgreSQL implementation of the
// PeriodStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPeriodStore(db store.DBTX, logger *slog.Logger) *PostgresPeriodStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPeriodStore{
		db:     db,
		logger: logger.With(slog.String("component", "period_store")),
	}
}

// Ensure PostgresPeriodStore implements store.PeriodStore interface
var _ store.PeriodStore = (*PostgresPeriodStore)(nil)

// Create implements store.PeriodStore.Create
// It saves a new academic period to the database.
// Returns store.ErrPeriodNameExists if the name is already taken.
func (s *PostgresPeriodStore) Create(ctx context.Context, period *domain.AcademicPeriod) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := period.Validate(); err != nil {
		log.Warn("period validation failed during create",
			slog.String("error", err.Error()),
			slog.String("period_id", period.ID.String()))
		return err
	}

	query := `
		INSERT INTO academic_periods (id, name, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		period.ID,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.CreatedAt,
		period.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during period creation",
				slog.String("error", err.Error()),
				slog.String("period_name", period.Name))
			return mapped
		}

		log.Error("failed to create period",
			slog.String("error", err.Error()),
			slog.String("period_id", period.ID.String()))
		return err
	}

	log.Info("academic period created successfully",
		slog.String("period_id", period.ID.String()),
		slog.String("period_name", period.Name))
	return nil
}

// GetByID implements store.PeriodStore.GetByID
// Returns store.ErrPeriodNotFound if the period does not exist.
func (s *PostgresPeriodStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM academic_periods
		WHERE id = $1
	`

	var period domain.AcademicPeriod
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&period.ID,
		&period.Name,
		&period.StartDate,
		&period.EndDate,
		&period.CreatedAt,
		&period.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("period not found", slog.String("period_id", id.String()))
			return nil, store.ErrPeriodNotFound
		}
		log.Error("failed to get period by ID",
			slog.String("error", err.Error()),
			slog.String("period_id", id.String()))
		return nil, err
	}

	return &period, nil
}

// GetByName implements store.PeriodStore.GetByName
// Returns store.ErrPeriodNotFound if the period does not exist.
func (s *PostgresPeriodStore) GetByName(ctx context.Context, name string) (*domain.AcademicPeriod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM academic_periods
		WHERE name = $1
	`

	var period domain.AcademicPeriod
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&period.ID,
		&period.Name,
		&period.StartDate,
		&period.EndDate,
		&period.CreatedAt,
		&period.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("period not found by name", slog.String("period_name", name))
			return nil, store.ErrPeriodNotFound
		}
		log.Error("failed to get period by name",
			slog.String("error", err.Error()),
			slog.String("period_name", name))
		return nil, err
	}

	return &period, nil
}

// List implements store.PeriodStore.List
// It retrieves all academic periods ordered by creation time.
func (s *PostgresPeriodStore) List(ctx context.Context) ([]*domain.AcademicPeriod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM academic_periods
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list periods", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	periods := []*domain.AcademicPeriod{}
	for rows.Next() {
		var period domain.AcademicPeriod
		err := rows.Scan(
			&period.ID,
			&period.Name,
			&period.StartDate,
			&period.EndDate,
			&period.CreatedAt,
			&period.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan period row", slog.String("error", err.Error()))
			return nil, err
		}
		periods = append(periods, &period)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return periods, nil
}

// Update implements store.PeriodStore.Update
// Returns store.ErrPeriodNotFound if the period does not exist.
// Returns store.ErrPeriodNameExists if renaming to a taken name.
func (s *PostgresPeriodStore) Update(ctx context.Context, period *domain.AcademicPeriod) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := period.Validate(); err != nil {
		log.Warn("period validation failed during update",
			slog.String("error", err.Error()),
			slog.String("period_id", period.ID.String()))
		return err
	}

	period.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE academic_periods
		SET name = $1, start_date = $2, end_date = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.UpdatedAt,
		period.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during period update",
				slog.String("error", err.Error()),
				slog.String("period_id", period.ID.String()))
			return mapped
		}

		log.Error("failed to update period",
			slog.String("error", err.Error()),
			slog.String("period_id", period.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("period_id", period.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("period not found for update",
			slog.String("period_id", period.ID.String()))
		return store.ErrPeriodNotFound
	}

	log.Info("academic period updated successfully",
		slog.String("period_id", period.ID.String()))
	return nil
}

// Delete implements store.PeriodStore.Delete
// Returns store.ErrPeriodNotFound if the period does not exist.
func (s *PostgresPeriodStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM academic_periods WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete period",
			slog.String("error", err.Error()),
			slog.String("period_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("period_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("period not found for delete", slog.String("period_id", id.String()))
		return store.ErrPeriodNotFound
	}

	log.Info("academic period deleted successfully", slog.String("period_id", id.String()))
	return nil
}

// WithTx implements store.PeriodStore.WithTx
// It returns a new PeriodStore that uses the provided transaction.
func (s *PostgresPeriodStore) WithTx(tx *sql.Tx) store.PeriodStore {
	return &PostgresPeriodStore{
		db:     tx,
		logger: s.logger,
	}
}
