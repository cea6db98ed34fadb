package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jpcastanov/siga-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// uniqueConstraintErrors maps unique constraint names, as declared in the
// migrations, to the store sentinel each violation stands for. The
// database is the final arbiter of uniqueness; service-level pre-checks
// only exist to produce friendlier messages ahead of the race window.
var uniqueConstraintErrors = map[string]error{
	"academic_periods_name_key":        store.ErrPeriodNameExists,
	"careers_name_key":                 store.ErrCareerNameExists,
	"curricula_career_semester_key":    store.ErrCurriculumExists,
	"subjects_name_period_key":         store.ErrSubjectExists,
	"schedules_aula_slot_key":          store.ErrScheduleAulaTaken,
	"schedules_subject_slot_key":       store.ErrScheduleSubjectTaken,
	"notes_student_subject_period_key": store.ErrNoteExists,
	"users_email_key":                  store.ErrEmailExists,
}

// foreignKeyConstraintErrors maps foreign key constraint names to the
// "not found" sentinel of the referenced entity, so a dangling reference
// surfaces the same way as a failed lookup.
var foreignKeyConstraintErrors = map[string]error{
	"careers_curriculum_id_fkey": store.ErrCurriculumNotFound,
	"curricula_career_id_fkey":   store.ErrCareerNotFound,
	"subjects_period_id_fkey":    store.ErrPeriodNotFound,
	"subjects_teacher_id_fkey":   store.ErrUserNotFound,
	"schedules_subject_id_fkey":  store.ErrSubjectNotFound,
	"notes_student_id_fkey":      store.ErrUserNotFound,
	"notes_subject_id_fkey":      store.ErrSubjectNotFound,
	"notes_period_id_fkey":       store.ErrPeriodNotFound,
}

// mapPgError translates a PostgreSQL constraint violation into the
// corresponding store sentinel error. Returns nil when the error is not
// a recognized violation; callers then return the original error.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolationCode:
		if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		return store.ErrDuplicate
	case pgForeignKeyViolationCode:
		if mapped, ok := foreignKeyConstraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	return nil
}
