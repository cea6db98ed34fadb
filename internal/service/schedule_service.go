package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/store"
)

// SchedulePatch describes a partial update to a schedule. Nil fields are
// left unchanged.
type SchedulePatch struct {
	SubjectID *uuid.UUID
	Day       *string
	Time      *string
	Aula      *string
}

// isEmpty reports whether the patch carries no fields.
func (p SchedulePatch) isEmpty() bool {
	return p.SubjectID == nil && p.Day == nil && p.Time == nil && p.Aula == nil
}

// ScheduleService provides timetable operations. Conflicts are exact
// (day, time) slot matches: two schedules may not share a classroom slot
// nor may one subject occupy the same slot twice. Overlapping but
// non-identical ranges are not conflicts.
type ScheduleService interface {
	// CreateSchedule places a subject in a weekly slot, optionally bound
	// to a classroom.
	CreateSchedule(ctx context.Context, subjectID uuid.UUID, day, timeRange, aula string) (*domain.Schedule, error)

	// GetSchedule retrieves a schedule by its ID.
	GetSchedule(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)

	// ListSchedules retrieves all schedules.
	ListSchedules(ctx context.Context) ([]*domain.Schedule, error)

	// UpdateSchedule applies a partial update to a schedule.
	UpdateSchedule(ctx context.Context, id uuid.UUID, patch SchedulePatch) (*domain.Schedule, error)

	// DeleteSchedule removes a schedule.
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
}

// scheduleServiceImpl implements the ScheduleService interface.
type scheduleServiceImpl struct {
	scheduleStore store.ScheduleStore
	subjectStore  store.SubjectStore
	logger        *slog.Logger
}

// NewScheduleService creates a new ScheduleService.
// It returns an error if any of the required dependencies are nil.
func NewScheduleService(
	scheduleStore store.ScheduleStore,
	subjectStore store.SubjectStore,
	logger *slog.Logger,
) (ScheduleService, error) {
	if scheduleStore == nil {
		return nil, domain.NewValidationError("scheduleStore", "cannot be nil", domain.ErrValidation)
	}
	if subjectStore == nil {
		return nil, domain.NewValidationError("subjectStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &scheduleServiceImpl{
		scheduleStore: scheduleStore,
		subjectStore:  subjectStore,
		logger:        logger.With(slog.String("component", "schedule_service")),
	}, nil
}

// CreateSchedule implements ScheduleService.CreateSchedule
// The slot pre-checks produce friendly conflict errors; the unique slot
// indexes close the remaining race window.
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, subjectID uuid.UUID, day, timeRange, aula string) (*domain.Schedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return nil, wrapUnexpected("create_schedule", "failed to check subject", err)
	}

	schedule, err := domain.NewSchedule(subjectID, day, timeRange, aula)
	if err != nil {
		log.Debug("invalid schedule data",
			slog.String("error", err.Error()),
			slog.String("subject_id", subjectID.String()))
		return nil, domain.NewValidationError("schedule", err.Error(), err)
	}

	if err := s.checkSlotConflicts(ctx, schedule, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.scheduleStore.Create(ctx, schedule); err != nil {
		return nil, wrapUnexpected("create_schedule", "failed to save schedule", err)
	}

	log.Info("schedule created",
		slog.String("schedule_id", schedule.ID.String()),
		slog.String("subject_id", subjectID.String()),
		slog.String("day", string(schedule.Day)),
		slog.String("time", schedule.Time))
	return schedule, nil
}

// GetSchedule implements ScheduleService.GetSchedule
func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	schedule, err := s.scheduleStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_schedule", "failed to retrieve schedule", err)
	}
	return schedule, nil
}

// ListSchedules implements ScheduleService.ListSchedules
func (s *scheduleServiceImpl) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	schedules, err := s.scheduleStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_schedules", "failed to list schedules", err)
	}
	return schedules, nil
}

// UpdateSchedule implements ScheduleService.UpdateSchedule
func (s *scheduleServiceImpl) UpdateSchedule(ctx context.Context, id uuid.UUID, patch SchedulePatch) (*domain.Schedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	schedule, err := s.scheduleStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_schedule", "failed to retrieve schedule", err)
	}

	if patch.SubjectID != nil && *patch.SubjectID != schedule.SubjectID {
		if _, err := s.subjectStore.GetByID(ctx, *patch.SubjectID); err != nil {
			return nil, wrapUnexpected("update_schedule", "failed to check subject", err)
		}
		schedule.SubjectID = *patch.SubjectID
	}

	if patch.Day != nil {
		day, err := domain.ParseWeekday(*patch.Day)
		if err != nil {
			return nil, domain.NewValidationError("day", err.Error(), err)
		}
		schedule.Day = day
	}

	if patch.Time != nil {
		rng, err := domain.ParseTimeRange(*patch.Time)
		if err != nil {
			return nil, domain.NewValidationError("time", err.Error(), err)
		}
		schedule.Time = rng.String()
	}

	if patch.Aula != nil {
		schedule.Aula = *patch.Aula
	}

	if err := schedule.Validate(); err != nil {
		return nil, domain.NewValidationError("schedule", err.Error(), err)
	}

	if err := s.checkSlotConflicts(ctx, schedule, schedule.ID); err != nil {
		return nil, err
	}

	if err := s.scheduleStore.Update(ctx, schedule); err != nil {
		return nil, wrapUnexpected("update_schedule", "failed to save schedule", err)
	}

	log.Info("schedule updated", slog.String("schedule_id", id.String()))
	return schedule, nil
}

// DeleteSchedule implements ScheduleService.DeleteSchedule
func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.scheduleStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_schedule", "failed to delete schedule", err)
	}

	log.Info("schedule deleted", slog.String("schedule_id", id.String()))
	return nil
}

// checkSlotConflicts checks the classroom and subject slot rules for the
// schedule's exact (day, time), ignoring the schedule identified by
// exclude (uuid.Nil on create).
func (s *scheduleServiceImpl) checkSlotConflicts(ctx context.Context, schedule *domain.Schedule, exclude uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if schedule.Aula != "" {
		if _, err := s.scheduleStore.GetByAulaSlot(ctx, schedule.Aula, schedule.Day, schedule.Time, exclude); err == nil {
			log.Debug("classroom slot already taken",
				slog.String("aula", schedule.Aula),
				slog.String("day", string(schedule.Day)),
				slog.String("time", schedule.Time))
			return store.ErrScheduleAulaTaken
		} else if !errors.Is(err, store.ErrScheduleNotFound) {
			return wrapUnexpected("check_slot", "failed to check classroom slot", err)
		}
	}

	if _, err := s.scheduleStore.GetBySubjectSlot(ctx, schedule.SubjectID, schedule.Day, schedule.Time, exclude); err == nil {
		log.Debug("subject slot already taken",
			slog.String("subject_id", schedule.SubjectID.String()),
			slog.String("day", string(schedule.Day)),
			slog.String("time", schedule.Time))
		return store.ErrScheduleSubjectTaken
	} else if !errors.Is(err, store.ErrScheduleNotFound) {
		return wrapUnexpected("check_slot", "failed to check subject slot", err)
	}

	return nil
}
