package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/store"
)

// SubjectPatch describes a partial update to a subject. Nil fields are
// left unchanged; a non-nil Prerequisites list replaces the existing one.
type SubjectPatch struct {
	Name          *string
	Credits       *int
	PeriodID      *uuid.UUID
	TeacherID     *uuid.UUID
	Prerequisites []uuid.UUID
}

// isEmpty reports whether the patch carries no fields.
func (p SubjectPatch) isEmpty() bool {
	return p.Name == nil && p.Credits == nil && p.PeriodID == nil &&
		p.TeacherID == nil && p.Prerequisites == nil
}

// SubjectService provides subject operations, including student
// enrollment.
type SubjectService interface {
	// CreateSubject creates a subject inside an academic period. The
	// optional teacher must hold the teacher role, and every prerequisite
	// must reference an existing subject.
	CreateSubject(ctx context.Context, name string, credits int, periodID uuid.UUID, teacherID *uuid.UUID, prerequisites []uuid.UUID) (*domain.Subject, error)

	// GetSubject retrieves a subject by its ID.
	GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// ListSubjects retrieves all subjects.
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)

	// UpdateSubject applies a partial update to a subject.
	UpdateSubject(ctx context.Context, id uuid.UUID, patch SubjectPatch) (*domain.Subject, error)

	// EnrollStudent enrolls a student in a subject. The student must hold
	// the student role and must not already be enrolled, regardless of
	// enrollment status.
	EnrollStudent(ctx context.Context, subjectID, studentID uuid.UUID) (*domain.Subject, error)

	// DeleteSubject removes a subject.
	DeleteSubject(ctx context.Context, id uuid.UUID) error
}

// subjectServiceImpl implements the SubjectService interface.
type subjectServiceImpl struct {
	subjectStore store.SubjectStore
	periodStore  store.PeriodStore
	userStore    store.UserStore
	logger       *slog.Logger
}

// NewSubjectService creates a new SubjectService.
// It returns an error if any of the required dependencies are nil.
func NewSubjectService(
	subjectStore store.SubjectStore,
	periodStore store.PeriodStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (SubjectService, error) {
	if subjectStore == nil {
		return nil, domain.NewValidationError("subjectStore", "cannot be nil", domain.ErrValidation)
	}
	if periodStore == nil {
		return nil, domain.NewValidationError("periodStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &subjectServiceImpl{
		subjectStore: subjectStore,
		periodStore:  periodStore,
		userStore:    userStore,
		logger:       logger.With(slog.String("component", "subject_service")),
	}, nil
}

// CreateSubject implements SubjectService.CreateSubject
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, name string, credits int, periodID uuid.UUID, teacherID *uuid.UUID, prerequisites []uuid.UUID) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.periodStore.GetByID(ctx, periodID); err != nil {
		return nil, wrapUnexpected("create_subject", "failed to check academic period", err)
	}

	if teacherID != nil {
		if err := s.checkRole(ctx, *teacherID, domain.RoleTeacher, "teacherId"); err != nil {
			return nil, err
		}
	}

	if err := s.checkPrerequisitesExist(ctx, prerequisites); err != nil {
		return nil, err
	}

	if _, err := s.subjectStore.GetByNameAndPeriod(ctx, name, periodID); err == nil {
		log.Debug("subject name already taken in period",
			slog.String("subject_name", name),
			slog.String("period_id", periodID.String()))
		return nil, store.ErrSubjectExists
	} else if !errors.Is(err, store.ErrSubjectNotFound) {
		return nil, wrapUnexpected("create_subject", "failed to check subject name", err)
	}

	subject, err := domain.NewSubject(name, credits, periodID, teacherID, prerequisites)
	if err != nil {
		log.Debug("invalid subject data",
			slog.String("error", err.Error()),
			slog.String("subject_name", name))
		return nil, domain.NewValidationError("subject", err.Error(), err)
	}

	if err := s.subjectStore.Create(ctx, subject); err != nil {
		return nil, wrapUnexpected("create_subject", "failed to save subject", err)
	}

	log.Info("subject created",
		slog.String("subject_id", subject.ID.String()),
		slog.String("subject_name", subject.Name))
	return subject, nil
}

// GetSubject implements SubjectService.GetSubject
func (s *subjectServiceImpl) GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	subject, err := s.subjectStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_subject", "failed to retrieve subject", err)
	}
	return subject, nil
}

// ListSubjects implements SubjectService.ListSubjects
func (s *subjectServiceImpl) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	subjects, err := s.subjectStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_subjects", "failed to list subjects", err)
	}
	return subjects, nil
}

// UpdateSubject implements SubjectService.UpdateSubject
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, id uuid.UUID, patch SubjectPatch) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	subject, err := s.subjectStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_subject", "failed to retrieve subject", err)
	}

	if patch.PeriodID != nil && *patch.PeriodID != subject.PeriodID {
		if _, err := s.periodStore.GetByID(ctx, *patch.PeriodID); err != nil {
			return nil, wrapUnexpected("update_subject", "failed to check academic period", err)
		}
		subject.PeriodID = *patch.PeriodID
	}

	if patch.TeacherID != nil {
		if err := s.checkRole(ctx, *patch.TeacherID, domain.RoleTeacher, "teacherId"); err != nil {
			return nil, err
		}
		subject.TeacherID = patch.TeacherID
	}

	if patch.Prerequisites != nil {
		if err := s.checkPrerequisitesExist(ctx, patch.Prerequisites); err != nil {
			return nil, err
		}
		subject.Prerequisites = patch.Prerequisites
	}

	if patch.Name != nil && *patch.Name != subject.Name {
		if _, err := s.subjectStore.GetByNameAndPeriod(ctx, *patch.Name, subject.PeriodID); err == nil {
			log.Debug("subject rename collides inside period",
				slog.String("subject_name", *patch.Name),
				slog.String("period_id", subject.PeriodID.String()))
			return nil, store.ErrSubjectExists
		} else if !errors.Is(err, store.ErrSubjectNotFound) {
			return nil, wrapUnexpected("update_subject", "failed to check subject name", err)
		}
		subject.Name = *patch.Name
	}

	if patch.Credits != nil {
		subject.Credits = *patch.Credits
	}

	if err := subject.Validate(); err != nil {
		return nil, domain.NewValidationError("subject", err.Error(), err)
	}

	if err := s.subjectStore.Update(ctx, subject); err != nil {
		return nil, wrapUnexpected("update_subject", "failed to save subject", err)
	}

	log.Info("subject updated", slog.String("subject_id", id.String()))
	return subject, nil
}

// EnrollStudent implements SubjectService.EnrollStudent
// The enrollment append and the totalStudents increment happen in one
// statement at the store layer, so the counter always matches the list.
func (s *subjectServiceImpl) EnrollStudent(ctx context.Context, subjectID, studentID uuid.UUID) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := s.subjectStore.GetByID(ctx, subjectID)
	if err != nil {
		return nil, wrapUnexpected("enroll_student", "failed to retrieve subject", err)
	}

	if err := s.checkRole(ctx, studentID, domain.RoleStudent, "studentId"); err != nil {
		return nil, err
	}

	if subject.IsEnrolled(studentID) {
		log.Debug("student already enrolled",
			slog.String("subject_id", subjectID.String()),
			slog.String("student_id", studentID.String()))
		return nil, domain.NewValidationError("studentId", "student is already enrolled in this subject", domain.ErrValidation)
	}

	enrollment := domain.Enrollment{
		UserID:     studentID,
		EnrolledAt: time.Now().UTC(),
		Status:     domain.EnrollmentActive,
	}

	if err := s.subjectStore.AppendEnrollment(ctx, subjectID, enrollment); err != nil {
		return nil, wrapUnexpected("enroll_student", "failed to append enrollment", err)
	}

	updated, err := s.subjectStore.GetByID(ctx, subjectID)
	if err != nil {
		return nil, wrapUnexpected("enroll_student", "failed to reload subject", err)
	}

	log.Info("student enrolled in subject",
		slog.String("subject_id", subjectID.String()),
		slog.String("student_id", studentID.String()),
		slog.Int("total_students", updated.TotalStudents))
	return updated, nil
}

// DeleteSubject implements SubjectService.DeleteSubject
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.subjectStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_subject", "failed to delete subject", err)
	}

	log.Info("subject deleted", slog.String("subject_id", id.String()))
	return nil
}

// checkRole verifies that the referenced user exists and holds the
// expected role.
func (s *subjectServiceImpl) checkRole(ctx context.Context, userID uuid.UUID, role domain.Role, field string) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return wrapUnexpected("check_role", "failed to retrieve user", err)
	}

	if user.Role != role {
		return domain.NewValidationError(field, "user does not hold the "+string(role)+" role", domain.ErrValidation)
	}

	return nil
}

// checkPrerequisitesExist verifies that every distinct prerequisite ID
// references an existing subject, using a single count query.
func (s *subjectServiceImpl) checkPrerequisitesExist(ctx context.Context, ids []uuid.UUID) error {
	distinct := dedupIDs(ids)
	if len(distinct) == 0 {
		return nil
	}

	count, err := s.subjectStore.CountByIDs(ctx, distinct)
	if err != nil {
		return wrapUnexpected("check_prerequisites", "failed to count subjects", err)
	}

	if count != len(distinct) {
		return store.ErrSubjectNotFound
	}

	return nil
}
