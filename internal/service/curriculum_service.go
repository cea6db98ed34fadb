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

// CurriculumPatch describes a partial update to a curriculum. Nil fields
// are left unchanged; a non-nil Subjects list replaces the existing one.
type CurriculumPatch struct {
	Semester *string
	Subjects []uuid.UUID
}

// isEmpty reports whether the patch carries no fields.
func (p CurriculumPatch) isEmpty() bool {
	return p.Semester == nil && p.Subjects == nil
}

// CurriculumService provides curriculum operations.
type CurriculumService interface {
	// CreateCurriculum creates a curriculum for a career and semester.
	// The semester must name an existing academic period, and every
	// subject ID must reference an existing subject.
	CreateCurriculum(ctx context.Context, careerID uuid.UUID, semester string, subjects []uuid.UUID) (*domain.Curriculum, error)

	// GetCurriculum retrieves a curriculum with its career and period
	// names resolved.
	GetCurriculum(ctx context.Context, id uuid.UUID) (*domain.EnrichedCurriculum, error)

	// ListCurricula retrieves all curricula with career and period names
	// resolved.
	ListCurricula(ctx context.Context) ([]*domain.EnrichedCurriculum, error)

	// UpdateCurriculum applies a partial update to a curriculum.
	UpdateCurriculum(ctx context.Context, id uuid.UUID, patch CurriculumPatch) (*domain.Curriculum, error)

	// AddSubject appends a subject to a curriculum's subject list. The
	// list keeps insertion order and is not deduplicated, so adding the
	// same subject twice records it twice.
	AddSubject(ctx context.Context, curriculumID, subjectID uuid.UUID) (*domain.Curriculum, error)

	// DeleteCurriculum removes a curriculum.
	DeleteCurriculum(ctx context.Context, id uuid.UUID) error
}

// curriculumServiceImpl implements the CurriculumService interface.
type curriculumServiceImpl struct {
	curriculumStore store.CurriculumStore
	careerStore     store.CareerStore
	periodStore     store.PeriodStore
	subjectStore    store.SubjectStore
	logger          *slog.Logger
}

// NewCurriculumService creates a new CurriculumService.
// It returns an error if any of the required dependencies are nil.
func NewCurriculumService(
	curriculumStore store.CurriculumStore,
	careerStore store.CareerStore,
	periodStore store.PeriodStore,
	subjectStore store.SubjectStore,
	logger *slog.Logger,
) (CurriculumService, error) {
	if curriculumStore == nil {
		return nil, domain.NewValidationError("curriculumStore", "cannot be nil", domain.ErrValidation)
	}
	if careerStore == nil {
		return nil, domain.NewValidationError("careerStore", "cannot be nil", domain.ErrValidation)
	}
	if periodStore == nil {
		return nil, domain.NewValidationError("periodStore", "cannot be nil", domain.ErrValidation)
	}
	if subjectStore == nil {
		return nil, domain.NewValidationError("subjectStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &curriculumServiceImpl{
		curriculumStore: curriculumStore,
		careerStore:     careerStore,
		periodStore:     periodStore,
		subjectStore:    subjectStore,
		logger:          logger.With(slog.String("component", "curriculum_service")),
	}, nil
}

// CreateCurriculum implements CurriculumService.CreateCurriculum
func (s *curriculumServiceImpl) CreateCurriculum(ctx context.Context, careerID uuid.UUID, semester string, subjects []uuid.UUID) (*domain.Curriculum, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.careerStore.GetByID(ctx, careerID); err != nil {
		return nil, wrapUnexpected("create_curriculum", "failed to check career", err)
	}

	if _, err := s.periodStore.GetByName(ctx, semester); err != nil {
		return nil, wrapUnexpected("create_curriculum", "failed to check academic period", err)
	}

	if err := s.checkSubjectsExist(ctx, subjects); err != nil {
		return nil, err
	}

	if _, err := s.curriculumStore.GetByCareerAndSemester(ctx, careerID, semester); err == nil {
		log.Debug("curriculum already exists for career and semester",
			slog.String("career_id", careerID.String()),
			slog.String("semester", semester))
		return nil, store.ErrCurriculumExists
	} else if !errors.Is(err, store.ErrCurriculumNotFound) {
		return nil, wrapUnexpected("create_curriculum", "failed to check curriculum", err)
	}

	curriculum, err := domain.NewCurriculum(careerID, semester, subjects)
	if err != nil {
		return nil, domain.NewValidationError("curriculum", err.Error(), err)
	}

	if err := s.curriculumStore.Create(ctx, curriculum); err != nil {
		return nil, wrapUnexpected("create_curriculum", "failed to save curriculum", err)
	}

	log.Info("curriculum created",
		slog.String("curriculum_id", curriculum.ID.String()),
		slog.String("career_id", careerID.String()),
		slog.String("semester", semester))
	return curriculum, nil
}

// GetCurriculum implements CurriculumService.GetCurriculum
func (s *curriculumServiceImpl) GetCurriculum(ctx context.Context, id uuid.UUID) (*domain.EnrichedCurriculum, error) {
	curriculum, err := s.curriculumStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_curriculum", "failed to retrieve curriculum", err)
	}

	return s.enrich(ctx, curriculum)
}

// ListCurricula implements CurriculumService.ListCurricula
func (s *curriculumServiceImpl) ListCurricula(ctx context.Context) ([]*domain.EnrichedCurriculum, error) {
	curricula, err := s.curriculumStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_curricula", "failed to list curricula", err)
	}

	enriched := make([]*domain.EnrichedCurriculum, 0, len(curricula))
	for _, curriculum := range curricula {
		e, err := s.enrich(ctx, curriculum)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, e)
	}

	return enriched, nil
}

// enrich resolves the display names of a curriculum's career and
// academic period. A dangling reference leaves the name empty instead of
// failing the read.
func (s *curriculumServiceImpl) enrich(ctx context.Context, curriculum *domain.Curriculum) (*domain.EnrichedCurriculum, error) {
	enriched := &domain.EnrichedCurriculum{Curriculum: *curriculum}

	career, err := s.careerStore.GetByID(ctx, curriculum.CareerID)
	if err == nil {
		enriched.CareerName = career.Name
	} else if !errors.Is(err, store.ErrCareerNotFound) {
		return nil, wrapUnexpected("get_curriculum", "failed to resolve career name", err)
	}

	period, err := s.periodStore.GetByName(ctx, curriculum.Semester)
	if err == nil {
		enriched.PeriodName = period.Name
	} else if !errors.Is(err, store.ErrPeriodNotFound) {
		return nil, wrapUnexpected("get_curriculum", "failed to resolve period name", err)
	}

	return enriched, nil
}

// UpdateCurriculum implements CurriculumService.UpdateCurriculum
func (s *curriculumServiceImpl) UpdateCurriculum(ctx context.Context, id uuid.UUID, patch CurriculumPatch) (*domain.Curriculum, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	curriculum, err := s.curriculumStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_curriculum", "failed to retrieve curriculum", err)
	}

	if patch.Semester != nil && *patch.Semester != curriculum.Semester {
		if _, err := s.periodStore.GetByName(ctx, *patch.Semester); err != nil {
			return nil, wrapUnexpected("update_curriculum", "failed to check academic period", err)
		}

		if _, err := s.curriculumStore.GetByCareerAndSemester(ctx, curriculum.CareerID, *patch.Semester); err == nil {
			log.Debug("curriculum already exists for career and semester",
				slog.String("career_id", curriculum.CareerID.String()),
				slog.String("semester", *patch.Semester))
			return nil, store.ErrCurriculumExists
		} else if !errors.Is(err, store.ErrCurriculumNotFound) {
			return nil, wrapUnexpected("update_curriculum", "failed to check curriculum", err)
		}

		curriculum.Semester = *patch.Semester
	}

	if patch.Subjects != nil {
		if err := s.checkSubjectsExist(ctx, patch.Subjects); err != nil {
			return nil, err
		}
		curriculum.Subjects = patch.Subjects
	}

	if err := curriculum.Validate(); err != nil {
		return nil, domain.NewValidationError("curriculum", err.Error(), err)
	}

	if err := s.curriculumStore.Update(ctx, curriculum); err != nil {
		return nil, wrapUnexpected("update_curriculum", "failed to save curriculum", err)
	}

	log.Info("curriculum updated", slog.String("curriculum_id", id.String()))
	return curriculum, nil
}

// AddSubject implements CurriculumService.AddSubject
func (s *curriculumServiceImpl) AddSubject(ctx context.Context, curriculumID, subjectID uuid.UUID) (*domain.Curriculum, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	curriculum, err := s.curriculumStore.GetByID(ctx, curriculumID)
	if err != nil {
		return nil, wrapUnexpected("add_subject", "failed to retrieve curriculum", err)
	}

	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return nil, wrapUnexpected("add_subject", "failed to check subject", err)
	}

	curriculum.Subjects = append(curriculum.Subjects, subjectID)

	if err := s.curriculumStore.Update(ctx, curriculum); err != nil {
		return nil, wrapUnexpected("add_subject", "failed to save curriculum", err)
	}

	log.Info("subject added to curriculum",
		slog.String("curriculum_id", curriculumID.String()),
		slog.String("subject_id", subjectID.String()))
	return curriculum, nil
}

// DeleteCurriculum implements CurriculumService.DeleteCurriculum
func (s *curriculumServiceImpl) DeleteCurriculum(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.curriculumStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_curriculum", "failed to delete curriculum", err)
	}

	log.Info("curriculum deleted", slog.String("curriculum_id", id.String()))
	return nil
}

// checkSubjectsExist verifies that every distinct subject ID references
// an existing subject, using a single count query.
func (s *curriculumServiceImpl) checkSubjectsExist(ctx context.Context, ids []uuid.UUID) error {
	distinct := dedupIDs(ids)
	if len(distinct) == 0 {
		return nil
	}

	count, err := s.subjectStore.CountByIDs(ctx, distinct)
	if err != nil {
		return wrapUnexpected("check_subjects", "failed to count subjects", err)
	}

	if count != len(distinct) {
		return store.ErrSubjectNotFound
	}

	return nil
}

// dedupIDs returns the distinct IDs in first-seen order.
func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	distinct := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	return distinct
}
