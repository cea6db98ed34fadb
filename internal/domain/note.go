package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Note-specific validation errors
var (
	// ErrNoteIDEmpty is returned when a note ID is empty or nil.
	ErrNoteIDEmpty = errors.New("note ID cannot be empty")

	// ErrNoteStudentEmpty is returned when a note's student ID is empty.
	ErrNoteStudentEmpty = errors.New("note student ID cannot be empty")

	// ErrNoteSubjectEmpty is returned when a note's subject ID is empty.
	ErrNoteSubjectEmpty = errors.New("note subject ID cannot be empty")

	// ErrNotePeriodEmpty is returned when a note's period ID is empty.
	ErrNotePeriodEmpty = errors.New("note period ID cannot be empty")
)

// Note records one grade for a student in a subject during an academic
// period. Exactly one note may exist per (student, subject, period).
type Note struct {
	ID        uuid.UUID `json:"uuid"`
	StudentID uuid.UUID `json:"studentId"`
	SubjectID uuid.UUID `json:"subjectId"`
	Grade     float64   `json:"grade"`
	PeriodID  uuid.UUID `json:"period"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new Note with a generated ID and fresh timestamps.
// Returns an error if validation fails.
func NewNote(studentID, subjectID, periodID uuid.UUID, grade float64) (*Note, error) {
	note := &Note{
		ID:        uuid.New(),
		StudentID: studentID,
		SubjectID: subjectID,
		Grade:     grade,
		PeriodID:  periodID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}

	if n.StudentID == uuid.Nil {
		return ErrNoteStudentEmpty
	}

	if n.SubjectID == uuid.Nil {
		return ErrNoteSubjectEmpty
	}

	if n.PeriodID == uuid.Nil {
		return ErrNotePeriodEmpty
	}

	return ParseGrade(n.Grade)
}
