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

// PeriodPatch describes a partial update to an academic period. Nil
// fields are left unchanged.
type PeriodPatch struct {
	Name      *string
	StartDate *string
	EndDate   *string
}

// isEmpty reports whether the patch carries no fields.
func (p PeriodPatch) isEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil
}

// PeriodService provides academic period operations.
type PeriodService interface {
	// CreatePeriod creates a new academic period with a unique name.
	CreatePeriod(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error)

	// GetPeriod retrieves an academic period by its ID.
	GetPeriod(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error)

	// ListPeriods retrieves all academic periods.
	ListPeriods(ctx context.Context) ([]*domain.AcademicPeriod, error)

	// UpdatePeriod applies a partial update to an academic period.
	UpdatePeriod(ctx context.Context, id uuid.UUID, patch PeriodPatch) (*domain.AcademicPeriod, error)

	// DeletePeriod removes an academic period.
	DeletePeriod(ctx context.Context, id uuid.UUID) error
}

// periodServiceImpl implements the PeriodService interface.
type periodServiceImpl struct {
	periodStore store.PeriodStore
	logger      *slog.Logger
}

// NewPeriodService creates a new PeriodService.
// It returns an error if any of the required dependencies are nil.
func NewPeriodService(periodStore store.PeriodStore, logger *slog.Logger) (PeriodService, error) {
	if periodStore == nil {
		return nil, domain.NewValidationError("periodStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &periodServiceImpl{
		periodStore: periodStore,
		logger:      logger.With(slog.String("component", "period_service")),
	}, nil
}

// CreatePeriod implements PeriodService.CreatePeriod
// The name pre-check produces a friendly duplicate error; the unique
// index on academic_periods.name closes the remaining race window.
func (s *periodServiceImpl) CreatePeriod(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.periodStore.GetByName(ctx, name); err == nil {
		log.Debug("period name already taken", slog.String("period_name", name))
		return nil, store.ErrPeriodNameExists
	} else if !errors.Is(err, store.ErrPeriodNotFound) {
		return nil, wrapUnexpected("create_period", "failed to check period name", err)
	}

	period, err := domain.NewAcademicPeriod(name, startDate, endDate)
	if err != nil {
		log.Debug("invalid period data",
			slog.String("error", err.Error()),
			slog.String("period_name", name))
		return nil, domain.NewValidationError("period", err.Error(), err)
	}

	if err := s.periodStore.Create(ctx, period); err != nil {
		return nil, wrapUnexpected("create_period", "failed to save period", err)
	}

	log.Info("academic period created",
		slog.String("period_id", period.ID.String()),
		slog.String("period_name", period.Name))
	return period, nil
}

// GetPeriod implements PeriodService.GetPeriod
func (s *periodServiceImpl) GetPeriod(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
	period, err := s.periodStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_period", "failed to retrieve period", err)
	}
	return period, nil
}

// ListPeriods implements PeriodService.ListPeriods
func (s *periodServiceImpl) ListPeriods(ctx context.Context) ([]*domain.AcademicPeriod, error) {
	periods, err := s.periodStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_periods", "failed to list periods", err)
	}
	return periods, nil
}

// UpdatePeriod implements PeriodService.UpdatePeriod
func (s *periodServiceImpl) UpdatePeriod(ctx context.Context, id uuid.UUID, patch PeriodPatch) (*domain.AcademicPeriod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	period, err := s.periodStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_period", "failed to retrieve period", err)
	}

	if patch.Name != nil && *patch.Name != period.Name {
		if _, err := s.periodStore.GetByName(ctx, *patch.Name); err == nil {
			log.Debug("period rename collides with existing name",
				slog.String("period_name", *patch.Name))
			return nil, store.ErrPeriodNameExists
		} else if !errors.Is(err, store.ErrPeriodNotFound) {
			return nil, wrapUnexpected("update_period", "failed to check period name", err)
		}
		period.Name = *patch.Name
	}
	if patch.StartDate != nil {
		period.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		period.EndDate = *patch.EndDate
	}

	if err := period.Validate(); err != nil {
		return nil, domain.NewValidationError("period", err.Error(), err)
	}

	if err := s.periodStore.Update(ctx, period); err != nil {
		return nil, wrapUnexpected("update_period", "failed to save period", err)
	}

	log.Info("academic period updated", slog.String("period_id", id.String()))
	return period, nil
}

// DeletePeriod implements PeriodService.DeletePeriod
func (s *periodServiceImpl) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.periodStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_period", "failed to delete period", err)
	}

	log.Info("academic period deleted", slog.String("period_id", id.String()))
	return nil
}
