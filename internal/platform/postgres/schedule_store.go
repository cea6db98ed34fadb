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

// PostgresScheduleStore implements the store.ScheduleStore interface
// using a PostgreSQL database as the storage backend. An empty aula is
// stored as NULL so the partial unique index on (aula, day, time_range)
// only guards rooms that are actually assigned.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of the
// ScheduleStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

// Create implements store.ScheduleStore.Create
// Returns store.ErrScheduleAulaTaken or store.ErrScheduleSubjectTaken
// when a unique slot constraint is violated.
func (s *PostgresScheduleStore) Create(ctx context.Context, schedule *domain.Schedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during create",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	query := `
		INSERT INTO schedules (id, subject_id, day, time_range, aula, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		schedule.ID,
		schedule.SubjectID,
		schedule.Day,
		schedule.Time,
		nullableString(schedule.Aula),
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during schedule creation",
				slog.String("error", err.Error()),
				slog.String("subject_id", schedule.SubjectID.String()),
				slog.String("day", string(schedule.Day)),
				slog.String("time", schedule.Time))
			return mapped
		}

		log.Error("failed to create schedule",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	log.Info("schedule created successfully",
		slog.String("schedule_id", schedule.ID.String()),
		slog.String("subject_id", schedule.SubjectID.String()),
		slog.String("day", string(schedule.Day)),
		slog.String("time", schedule.Time))
	return nil
}

// GetByID implements store.ScheduleStore.GetByID
// Returns store.ErrScheduleNotFound if the schedule does not exist.
func (s *PostgresScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByAulaSlot implements store.ScheduleStore.GetByAulaSlot
// Returns store.ErrScheduleNotFound if the classroom slot is free.
func (s *PostgresScheduleStore) GetByAulaSlot(ctx context.Context, aula string, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error) {
	return s.getOne(ctx, `WHERE aula = $1 AND day = $2 AND time_range = $3 AND id <> $4`, aula, day, timeRange, exclude)
}

// GetBySubjectSlot implements store.ScheduleStore.GetBySubjectSlot
// Returns store.ErrScheduleNotFound if the subject slot is free.
func (s *PostgresScheduleStore) GetBySubjectSlot(ctx context.Context, subjectID uuid.UUID, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error) {
	return s.getOne(ctx, `WHERE subject_id = $1 AND day = $2 AND time_range = $3 AND id <> $4`, subjectID, day, timeRange, exclude)
}

func (s *PostgresScheduleStore) getOne(ctx context.Context, where string, args ...any) (*domain.Schedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, subject_id, day, time_range, aula, created_at, updated_at
		FROM schedules
	` + where

	schedule, err := scanSchedule(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule not found")
			return nil, store.ErrScheduleNotFound
		}
		log.Error("failed to get schedule", slog.String("error", err.Error()))
		return nil, err
	}

	return schedule, nil
}

func scanSchedule(row scanTarget) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var day string
	var aula sql.NullString

	err := row.Scan(
		&schedule.ID,
		&schedule.SubjectID,
		&day,
		&schedule.Time,
		&aula,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.Day = domain.Weekday(day)
	schedule.Aula = aula.String
	return &schedule, nil
}

// List implements store.ScheduleStore.List
// It retrieves all schedules ordered by creation time.
func (s *PostgresScheduleStore) List(ctx context.Context) ([]*domain.Schedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, subject_id, day, time_range, aula, created_at, updated_at
		FROM schedules
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list schedules", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	schedules := []*domain.Schedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			log.Error("failed to scan schedule row", slog.String("error", err.Error()))
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return schedules, nil
}

// Update implements store.ScheduleStore.Update
// Returns store.ErrScheduleNotFound if the schedule does not exist.
// Returns store.ErrScheduleAulaTaken or store.ErrScheduleSubjectTaken
// when a unique slot constraint is violated.
func (s *PostgresScheduleStore) Update(ctx context.Context, schedule *domain.Schedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during update",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	schedule.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE schedules
		SET subject_id = $1, day = $2, time_range = $3, aula = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		schedule.SubjectID,
		schedule.Day,
		schedule.Time,
		nullableString(schedule.Aula),
		schedule.UpdatedAt,
		schedule.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during schedule update",
				slog.String("error", err.Error()),
				slog.String("schedule_id", schedule.ID.String()))
			return mapped
		}

		log.Error("failed to update schedule",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("schedule not found for update",
			slog.String("schedule_id", schedule.ID.String()))
		return store.ErrScheduleNotFound
	}

	log.Info("schedule updated successfully",
		slog.String("schedule_id", schedule.ID.String()))
	return nil
}

// Delete implements store.ScheduleStore.Delete
// Returns store.ErrScheduleNotFound if the schedule does not exist.
func (s *PostgresScheduleStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM schedules WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete schedule",
			slog.String("error", err.Error()),
			slog.String("schedule_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("schedule_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("schedule not found for delete", slog.String("schedule_id", id.String()))
		return store.ErrScheduleNotFound
	}

	log.Info("schedule deleted successfully", slog.String("schedule_id", id.String()))
	return nil
}

// WithTx implements store.ScheduleStore.WithTx
// It returns a new ScheduleStore that uses the provided transaction.
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableString converts an optional text value to its SQL form,
// storing empty strings as NULL.
func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
