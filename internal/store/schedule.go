package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
)

// ScheduleStore defines the interface for schedule persistence.
//
// Conflict lookups are point checks on exact (day, time-string) equality;
// overlapping-but-distinct ranges are not considered conflicts.
type ScheduleStore interface {
	// Create saves a new schedule to the store.
	// Returns ErrScheduleAulaTaken or ErrScheduleSubjectTaken when a
	// unique slot constraint is violated.
	Create(ctx context.Context, schedule *domain.Schedule) error

	// GetByID retrieves a schedule by its unique ID.
	// Returns ErrScheduleNotFound if the schedule does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)

	// GetByAulaSlot retrieves the schedule occupying a classroom at the
	// exact (day, time) slot, excluding the given schedule ID (uuid.Nil to
	// exclude nothing). Returns ErrScheduleNotFound if the slot is free.
	GetByAulaSlot(ctx context.Context, aula string, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error)

	// GetBySubjectSlot retrieves the schedule of a subject at the exact
	// (day, time) slot, excluding the given schedule ID (uuid.Nil to
	// exclude nothing). Returns ErrScheduleNotFound if the slot is free.
	GetBySubjectSlot(ctx context.Context, subjectID uuid.UUID, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error)

	// List retrieves all schedules ordered by creation time.
	List(ctx context.Context) ([]*domain.Schedule, error)

	// Update modifies an existing schedule.
	// Returns ErrScheduleNotFound if the schedule does not exist.
	// Returns ErrScheduleAulaTaken or ErrScheduleSubjectTaken when a
	// unique slot constraint is violated.
	Update(ctx context.Context, schedule *domain.Schedule) error

	// Delete removes a schedule from the store by its ID.
	// Returns ErrScheduleNotFound if the schedule does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ScheduleStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ScheduleStore
}
