package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus represents the state of a student's enrollment in a
// subject. No transition guards exist; any value may be set via update.
type EnrollmentStatus string

// Possible enrollment status values
const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentInactive  EnrollmentStatus = "inactive"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// Subject-specific validation errors
var (
	// ErrSubjectIDEmpty is returned when a subject ID is empty or nil.
	ErrSubjectIDEmpty = errors.New("subject ID cannot be empty")

	// ErrSubjectNameEmpty is returned when a subject name is empty.
	ErrSubjectNameEmpty = errors.New("subject name cannot be empty")

	// ErrSubjectCreditsInvalid is returned when credits are not positive.
	ErrSubjectCreditsInvalid = errors.New("subject credits must be greater than zero")

	// ErrSubjectPeriodEmpty is returned when a subject's period ID is empty.
	ErrSubjectPeriodEmpty = errors.New("subject period ID cannot be empty")

	// ErrEnrollmentStatusInvalid is returned when an enrollment status is not valid.
	ErrEnrollmentStatusInvalid = errors.New("invalid enrollment status")
)

// Enrollment records one student's enrollment in a subject.
type Enrollment struct {
	UserID     uuid.UUID        `json:"userId"`
	EnrolledAt time.Time        `json:"enrolledAt"`
	Status     EnrollmentStatus `json:"status"`
}

// Subject represents a course offered during one academic period.
// (name, periodId) pairs are unique. Prerequisites reference other
// subjects by ID; existence is validated at write time, completion is not.
type Subject struct {
	ID               uuid.UUID    `json:"uuid"`
	Name             string       `json:"name"`
	Credits          int          `json:"credits"`
	PeriodID         uuid.UUID    `json:"periodId"`
	TeacherID        *uuid.UUID   `json:"teacherId,omitempty"`
	Prerequisites    []uuid.UUID  `json:"prerequisites"`
	StudentsEnrolled []Enrollment `json:"studentsEnrolled"`
	TotalStudents    int          `json:"totalStudents"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NewSubject creates a new Subject with a generated ID and fresh
// timestamps. Returns an error if validation fails.
func NewSubject(name string, credits int, periodID uuid.UUID, teacherID *uuid.UUID, prerequisites []uuid.UUID) (*Subject, error) {
	subject := &Subject{
		ID:            uuid.New(),
		Name:          name,
		Credits:       credits,
		PeriodID:      periodID,
		TeacherID:     teacherID,
		Prerequisites: prerequisites,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSubjectIDEmpty
	}

	if s.Name == "" {
		return ErrSubjectNameEmpty
	}

	if s.Credits <= 0 {
		return ErrSubjectCreditsInvalid
	}

	if s.PeriodID == uuid.Nil {
		return ErrSubjectPeriodEmpty
	}

	for _, e := range s.StudentsEnrolled {
		if !isValidEnrollmentStatus(e.Status) {
			return ErrEnrollmentStatusInvalid
		}
	}

	return nil
}

// IsEnrolled reports whether the given student already appears in the
// subject's enrollment list, regardless of status.
func (s *Subject) IsEnrolled(studentID uuid.UUID) bool {
	for _, e := range s.StudentsEnrolled {
		if e.UserID == studentID {
			return true
		}
	}
	return false
}

// isValidEnrollmentStatus checks if the given status is a valid EnrollmentStatus.
func isValidEnrollmentStatus(status EnrollmentStatus) bool {
	switch status {
	case EnrollmentActive, EnrollmentInactive, EnrollmentWithdrawn:
		return true
	default:
		return false
	}
}
