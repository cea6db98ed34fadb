package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/store"
)

// CareerPatch describes a partial update to a career. Nil fields are
// left unchanged; EnrolledStudents entries are merged into the existing
// per-semester sets rather than replacing them.
type CareerPatch struct {
	Name             *string
	Description      *string
	EnrolledStudents []domain.SemesterEnrollment
}

// isEmpty reports whether the patch carries no fields.
func (p CareerPatch) isEmpty() bool {
	return p.Name == nil && p.Description == nil && p.EnrolledStudents == nil
}

// CareerService provides career operations. Creating a career also
// creates its curriculum for the configured default period and links the
// two, all in one transaction.
type CareerService interface {
	// CreateCareer creates a career together with its default-period
	// curriculum. The returned career carries the curriculum link.
	CreateCareer(ctx context.Context, name, description string) (*domain.Career, error)

	// GetCareer retrieves a career by its ID.
	GetCareer(ctx context.Context, id uuid.UUID) (*domain.Career, error)

	// ListCareers retrieves all careers.
	ListCareers(ctx context.Context) ([]*domain.Career, error)

	// UpdateCareer applies a partial update to a career. Enrollment
	// entries in the patch are unioned into the existing sets.
	UpdateCareer(ctx context.Context, id uuid.UUID, patch CareerPatch) (*domain.Career, error)

	// DeleteCareer removes a career.
	DeleteCareer(ctx context.Context, id uuid.UUID) error
}

// careerServiceImpl implements the CareerService interface.
type careerServiceImpl struct {
	careerStore     store.CareerStore
	curriculumStore store.CurriculumStore
	runTx           TxRunner
	defaultSemester string
	logger          *slog.Logger
}

// NewCareerService creates a new CareerService. defaultSemester is the
// academic period name assigned to the curriculum created with each
// career. It returns an error if any required dependency is missing.
func NewCareerService(
	careerStore store.CareerStore,
	curriculumStore store.CurriculumStore,
	runTx TxRunner,
	defaultSemester string,
	logger *slog.Logger,
) (CareerService, error) {
	if careerStore == nil {
		return nil, domain.NewValidationError("careerStore", "cannot be nil", domain.ErrValidation)
	}
	if curriculumStore == nil {
		return nil, domain.NewValidationError("curriculumStore", "cannot be nil", domain.ErrValidation)
	}
	if runTx == nil {
		return nil, domain.NewValidationError("runTx", "cannot be nil", domain.ErrValidation)
	}
	if defaultSemester == "" {
		return nil, domain.NewValidationError("defaultSemester", "cannot be empty", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &careerServiceImpl{
		careerStore:     careerStore,
		curriculumStore: curriculumStore,
		runTx:           runTx,
		defaultSemester: defaultSemester,
		logger:          logger.With(slog.String("component", "career_service")),
	}, nil
}

// CreateCareer implements CareerService.CreateCareer
// The career, its default-period curriculum, and the link between them
// are written in a single transaction, so a failure at any step leaves
// no orphaned career behind.
func (s *careerServiceImpl) CreateCareer(ctx context.Context, name, description string) (*domain.Career, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.careerStore.GetByName(ctx, name); err == nil {
		log.Debug("career name already taken", slog.String("career_name", name))
		return nil, store.ErrCareerNameExists
	} else if !errors.Is(err, store.ErrCareerNotFound) {
		return nil, wrapUnexpected("create_career", "failed to check career name", err)
	}

	career, err := domain.NewCareer(name, description)
	if err != nil {
		log.Debug("invalid career data",
			slog.String("error", err.Error()),
			slog.String("career_name", name))
		return nil, domain.NewValidationError("career", err.Error(), err)
	}

	curriculum, err := domain.NewCurriculum(career.ID, s.defaultSemester, nil)
	if err != nil {
		return nil, domain.NewValidationError("curriculum", err.Error(), err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txCareers := s.careerStore.WithTx(tx)
		txCurricula := s.curriculumStore.WithTx(tx)

		if err := txCareers.Create(ctx, career); err != nil {
			return err
		}

		if err := txCurricula.Create(ctx, curriculum); err != nil {
			return err
		}

		career.CurriculumID = &curriculum.ID
		return txCareers.Update(ctx, career)
	})
	if err != nil {
		return nil, wrapUnexpected("create_career", "failed to create career and curriculum", err)
	}

	log.Info("career created with default curriculum",
		slog.String("career_id", career.ID.String()),
		slog.String("curriculum_id", curriculum.ID.String()),
		slog.String("semester", s.defaultSemester))
	return career, nil
}

// GetCareer implements CareerService.GetCareer
func (s *careerServiceImpl) GetCareer(ctx context.Context, id uuid.UUID) (*domain.Career, error) {
	career, err := s.careerStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_career", "failed to retrieve career", err)
	}
	return career, nil
}

// ListCareers implements CareerService.ListCareers
func (s *careerServiceImpl) ListCareers(ctx context.Context) ([]*domain.Career, error) {
	careers, err := s.careerStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_careers", "failed to list careers", err)
	}
	return careers, nil
}

// UpdateCareer implements CareerService.UpdateCareer
func (s *careerServiceImpl) UpdateCareer(ctx context.Context, id uuid.UUID, patch CareerPatch) (*domain.Career, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	career, err := s.careerStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_career", "failed to retrieve career", err)
	}

	if patch.Name != nil && *patch.Name != career.Name {
		if _, err := s.careerStore.GetByName(ctx, *patch.Name); err == nil {
			log.Debug("career rename collides with existing name",
				slog.String("career_name", *patch.Name))
			return nil, store.ErrCareerNameExists
		} else if !errors.Is(err, store.ErrCareerNotFound) {
			return nil, wrapUnexpected("update_career", "failed to check career name", err)
		}
		career.Name = *patch.Name
	}
	if patch.Description != nil {
		career.Description = *patch.Description
	}
	if patch.EnrolledStudents != nil {
		career.EnrolledStudents = domain.MergeEnrollments(career.EnrolledStudents, patch.EnrolledStudents)
	}

	if err := career.Validate(); err != nil {
		return nil, domain.NewValidationError("career", err.Error(), err)
	}

	if err := s.careerStore.Update(ctx, career); err != nil {
		return nil, wrapUnexpected("update_career", "failed to save career", err)
	}

	log.Info("career updated", slog.String("career_id", id.String()))
	return career, nil
}

// DeleteCareer implements CareerService.DeleteCareer
func (s *careerServiceImpl) DeleteCareer(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.careerStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_career", "failed to delete career", err)
	}

	log.Info("career deleted", slog.String("career_id", id.String()))
	return nil
}
