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

// NotePatch describes a partial update to a note. Nil fields are left
// unchanged.
type NotePatch struct {
	StudentID *uuid.UUID
	SubjectID *uuid.UUID
	PeriodID  *uuid.UUID
	Grade     *float64
}

// isEmpty reports whether the patch carries no fields.
func (p NotePatch) isEmpty() bool {
	return p.StudentID == nil && p.SubjectID == nil && p.PeriodID == nil && p.Grade == nil
}

// NoteService provides grade recording operations. Exactly one note may
// exist per (student, subject, period) triple.
type NoteService interface {
	// CreateNote records a grade for a student in a subject during an
	// academic period. The grade must lie in [0, 5].
	CreateNote(ctx context.Context, studentID, subjectID, periodID uuid.UUID, grade float64) (*domain.Note, error)

	// GetNote retrieves a note by its ID.
	GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// ListNotes retrieves all notes.
	ListNotes(ctx context.Context) ([]*domain.Note, error)

	// UpdateNote applies a partial update to a note.
	UpdateNote(ctx context.Context, id uuid.UUID, patch NotePatch) (*domain.Note, error)

	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

// noteServiceImpl implements the NoteService interface.
type noteServiceImpl struct {
	noteStore    store.NoteStore
	subjectStore store.SubjectStore
	periodStore  store.PeriodStore
	userStore    store.UserStore
	logger       *slog.Logger
}

// NewNoteService creates a new NoteService.
// It returns an error if any of the required dependencies are nil.
func NewNoteService(
	noteStore store.NoteStore,
	subjectStore store.SubjectStore,
	periodStore store.PeriodStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (NoteService, error) {
	if noteStore == nil {
		return nil, domain.NewValidationError("noteStore", "cannot be nil", domain.ErrValidation)
	}
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

	return &noteServiceImpl{
		noteStore:    noteStore,
		subjectStore: subjectStore,
		periodStore:  periodStore,
		userStore:    userStore,
		logger:       logger.With(slog.String("component", "note_service")),
	}, nil
}

// CreateNote implements NoteService.CreateNote
func (s *noteServiceImpl) CreateNote(ctx context.Context, studentID, subjectID, periodID uuid.UUID, grade float64) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkStudent(ctx, studentID); err != nil {
		return nil, err
	}

	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return nil, wrapUnexpected("create_note", "failed to check subject", err)
	}

	if _, err := s.periodStore.GetByID(ctx, periodID); err != nil {
		return nil, wrapUnexpected("create_note", "failed to check academic period", err)
	}

	if _, err := s.noteStore.GetByStudentSubjectPeriod(ctx, studentID, subjectID, periodID, uuid.Nil); err == nil {
		log.Debug("note already exists for student, subject and period",
			slog.String("student_id", studentID.String()),
			slog.String("subject_id", subjectID.String()),
			slog.String("period_id", periodID.String()))
		return nil, store.ErrNoteExists
	} else if !errors.Is(err, store.ErrNoteNotFound) {
		return nil, wrapUnexpected("create_note", "failed to check existing note", err)
	}

	note, err := domain.NewNote(studentID, subjectID, periodID, grade)
	if err != nil {
		log.Debug("invalid note data",
			slog.String("error", err.Error()),
			slog.Float64("grade", grade))
		return nil, domain.NewValidationError("note", err.Error(), err)
	}

	if err := s.noteStore.Create(ctx, note); err != nil {
		return nil, wrapUnexpected("create_note", "failed to save note", err)
	}

	log.Info("note created",
		slog.String("note_id", note.ID.String()),
		slog.String("student_id", studentID.String()),
		slog.String("subject_id", subjectID.String()),
		slog.Float64("grade", grade))
	return note, nil
}

// GetNote implements NoteService.GetNote
func (s *noteServiceImpl) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_note", "failed to retrieve note", err)
	}
	return note, nil
}

// ListNotes implements NoteService.ListNotes
func (s *noteServiceImpl) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.noteStore.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("list_notes", "failed to list notes", err)
	}
	return notes, nil
}

// UpdateNote implements NoteService.UpdateNote
func (s *noteServiceImpl) UpdateNote(ctx context.Context, id uuid.UUID, patch NotePatch) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.isEmpty() {
		return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
	}

	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("update_note", "failed to retrieve note", err)
	}

	if patch.StudentID != nil && *patch.StudentID != note.StudentID {
		if err := s.checkStudent(ctx, *patch.StudentID); err != nil {
			return nil, err
		}
		note.StudentID = *patch.StudentID
	}

	if patch.SubjectID != nil && *patch.SubjectID != note.SubjectID {
		if _, err := s.subjectStore.GetByID(ctx, *patch.SubjectID); err != nil {
			return nil, wrapUnexpected("update_note", "failed to check subject", err)
		}
		note.SubjectID = *patch.SubjectID
	}

	if patch.PeriodID != nil && *patch.PeriodID != note.PeriodID {
		if _, err := s.periodStore.GetByID(ctx, *patch.PeriodID); err != nil {
			return nil, wrapUnexpected("update_note", "failed to check academic period", err)
		}
		note.PeriodID = *patch.PeriodID
	}

	if patch.Grade != nil {
		note.Grade = *patch.Grade
	}

	if err := note.Validate(); err != nil {
		return nil, domain.NewValidationError("note", err.Error(), err)
	}

	if _, err := s.noteStore.GetByStudentSubjectPeriod(ctx, note.StudentID, note.SubjectID, note.PeriodID, note.ID); err == nil {
		log.Debug("note update collides with existing note",
			slog.String("note_id", id.String()))
		return nil, store.ErrNoteExists
	} else if !errors.Is(err, store.ErrNoteNotFound) {
		return nil, wrapUnexpected("update_note", "failed to check existing note", err)
	}

	if err := s.noteStore.Update(ctx, note); err != nil {
		return nil, wrapUnexpected("update_note", "failed to save note", err)
	}

	log.Info("note updated", slog.String("note_id", id.String()))
	return note, nil
}

// DeleteNote implements NoteService.DeleteNote
func (s *noteServiceImpl) DeleteNote(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.noteStore.Delete(ctx, id); err != nil {
		return wrapUnexpected("delete_note", "failed to delete note", err)
	}

	log.Info("note deleted", slog.String("note_id", id.String()))
	return nil
}

// checkStudent verifies that the referenced user exists and holds the
// student role.
func (s *noteServiceImpl) checkStudent(ctx context.Context, studentID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, studentID)
	if err != nil {
		return wrapUnexpected("check_student", "failed to retrieve user", err)
	}

	if user.Role != domain.RoleStudent {
		return domain.NewValidationError("studentId", "user does not hold the student role", domain.ErrValidation)
	}

	return nil
}
