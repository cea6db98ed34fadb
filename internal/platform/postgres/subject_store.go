package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/store"
)

// PostgresSubjectStore implements the store.SubjectStore interface
// using a PostgreSQL database as the storage backend. Prerequisites and
// the enrollment list are stored as JSONB document columns.
type PostgresSubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubjectStore creates a new PostgreSQL implementation of the
// SubjectStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSubjectStore(db store.DBTX, logger *slog.Logger) *PostgresSubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

// Ensure PostgresSubjectStore implements store.SubjectStore interface
var _ store.SubjectStore = (*PostgresSubjectStore)(nil)

const subjectColumns = `id, name, credits, period_id, teacher_id, prerequisites, students_enrolled, total_students, created_at, updated_at`

// Create implements store.SubjectStore.Create
// Returns store.ErrSubjectExists if the (name, period) pair is taken.
// Returns the referenced entity's "not found" error on a dangling
// period or teacher reference.
func (s *PostgresSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	prerequisites, err := marshalJSONB(subject.Prerequisites)
	if err != nil {
		log.Error("failed to encode prerequisites",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	enrolled, err := marshalJSONB(subject.StudentsEnrolled)
	if err != nil {
		log.Error("failed to encode enrollment list",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		INSERT INTO subjects (` + subjectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		subject.ID,
		subject.Name,
		subject.Credits,
		subject.PeriodID,
		nullableUUID(subject.TeacherID),
		prerequisites,
		enrolled,
		subject.TotalStudents,
		subject.CreatedAt,
		subject.UpdatedAt,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during subject creation",
				slog.String("error", err.Error()),
				slog.String("subject_name", subject.Name))
			return mapped
		}

		log.Error("failed to create subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	log.Info("subject created successfully",
		slog.String("subject_id", subject.ID.String()),
		slog.String("subject_name", subject.Name))
	return nil
}

// GetByID implements store.SubjectStore.GetByID
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByNameAndPeriod implements store.SubjectStore.GetByNameAndPeriod
// Returns store.ErrSubjectNotFound if no subject with the name exists in
// the period.
func (s *PostgresSubjectStore) GetByNameAndPeriod(ctx context.Context, name string, periodID uuid.UUID) (*domain.Subject, error) {
	return s.getOne(ctx, `WHERE name = $1 AND period_id = $2`, name, periodID)
}

func (s *PostgresSubjectStore) getOne(ctx context.Context, where string, args ...any) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
	` + where

	subject, err := scanSubject(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subject not found")
			return nil, store.ErrSubjectNotFound
		}
		log.Error("failed to get subject", slog.String("error", err.Error()))
		return nil, err
	}

	return subject, nil
}

// scanTarget matches both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanSubject(row scanTarget) (*domain.Subject, error) {
	var subject domain.Subject
	var teacherID uuid.NullUUID
	var prerequisites, enrolled []byte

	err := row.Scan(
		&subject.ID,
		&subject.Name,
		&subject.Credits,
		&subject.PeriodID,
		&teacherID,
		&prerequisites,
		&enrolled,
		&subject.TotalStudents,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if teacherID.Valid {
		subject.TeacherID = &teacherID.UUID
	}

	subject.Prerequisites, err = unmarshalJSONB[uuid.UUID](prerequisites)
	if err != nil {
		return nil, err
	}

	subject.StudentsEnrolled, err = unmarshalJSONB[domain.Enrollment](enrolled)
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

// CountByIDs implements store.SubjectStore.CountByIDs
// It returns how many distinct subjects among the given IDs exist.
// Duplicate IDs in the input count once.
func (s *PostgresSubjectStore) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM subjects WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count subjects by IDs",
			slog.String("error", err.Error()),
			slog.Int("requested", len(ids)))
		return 0, err
	}

	return count, nil
}

// List implements store.SubjectStore.List
// It retrieves all subjects ordered by creation time.
func (s *PostgresSubjectStore) List(ctx context.Context) ([]*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list subjects", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	subjects := []*domain.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			log.Error("failed to scan subject row", slog.String("error", err.Error()))
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return subjects, nil
}

// Update implements store.SubjectStore.Update
// Returns store.ErrSubjectNotFound if the subject does not exist.
// Returns store.ErrSubjectExists if the update collides with another
// subject's (name, period) pair.
func (s *PostgresSubjectStore) Update(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during update",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	prerequisites, err := marshalJSONB(subject.Prerequisites)
	if err != nil {
		log.Error("failed to encode prerequisites",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	enrolled, err := marshalJSONB(subject.StudentsEnrolled)
	if err != nil {
		log.Error("failed to encode enrollment list",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	subject.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE subjects
		SET name = $1, credits = $2, period_id = $3, teacher_id = $4,
		    prerequisites = $5, students_enrolled = $6, total_students = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		subject.Name,
		subject.Credits,
		subject.PeriodID,
		nullableUUID(subject.TeacherID),
		prerequisites,
		enrolled,
		subject.TotalStudents,
		subject.UpdatedAt,
		subject.ID,
	)

	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			log.Warn("constraint violation during subject update",
				slog.String("error", err.Error()),
				slog.String("subject_id", subject.ID.String()))
			return mapped
		}

		log.Error("failed to update subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("subject not found for update",
			slog.String("subject_id", subject.ID.String()))
		return store.ErrSubjectNotFound
	}

	log.Info("subject updated successfully",
		slog.String("subject_id", subject.ID.String()))
	return nil
}

// AppendEnrollment implements store.SubjectStore.AppendEnrollment
// The JSONB append and the counter increment happen in one statement, so
// the enrollment list and totalStudents can never diverge.
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) AppendEnrollment(ctx context.Context, id uuid.UUID, enrollment domain.Enrollment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := marshalJSONB([]domain.Enrollment{enrollment})
	if err != nil {
		log.Error("failed to encode enrollment entry",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return err
	}

	query := `
		UPDATE subjects
		SET students_enrolled = students_enrolled || $1::jsonb,
		    total_students = total_students + 1,
		    updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, entry, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to append enrollment",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()),
			slog.String("student_id", enrollment.UserID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("subject not found for enrollment",
			slog.String("subject_id", id.String()))
		return store.ErrSubjectNotFound
	}

	log.Info("enrollment appended successfully",
		slog.String("subject_id", id.String()),
		slog.String("student_id", enrollment.UserID.String()))
	return nil
}

// Delete implements store.SubjectStore.Delete
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM subjects WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("subject not found for delete", slog.String("subject_id", id.String()))
		return store.ErrSubjectNotFound
	}

	log.Info("subject deleted successfully", slog.String("subject_id", id.String()))
	return nil
}

// WithTx implements store.SubjectStore.WithTx
// It returns a new SubjectStore that uses the provided transaction.
func (s *PostgresSubjectStore) WithTx(tx *sql.Tx) store.SubjectStore {
	return &PostgresSubjectStore{
		db:     tx,
		logger: s.logger,
	}
}
