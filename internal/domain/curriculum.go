package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Curriculum-specific validation errors
var (
	// ErrCurriculumIDEmpty is returned when a curriculum ID is empty or nil.
	ErrCurriculumIDEmpty = errors.New("curriculum ID cannot be empty")

	// ErrCurriculumCareerEmpty is returned when a curriculum's career ID is empty.
	ErrCurriculumCareerEmpty = errors.New("curriculum career ID cannot be empty")

	// ErrCurriculumSemesterEmpty is returned when a curriculum's semester is empty.
	ErrCurriculumSemesterEmpty = errors.New("curriculum semester cannot be empty")
)

// Curriculum is the set of subjects assigned to a career for one academic
// period. Semester holds the academic period name; at most one curriculum
// exists per (career, semester) pair.
type Curriculum struct {
	ID        uuid.UUID   `json:"uuid"`
	CareerID  uuid.UUID   `json:"careerId"`
	Semester  string      `json:"semester"`
	Subjects  []uuid.UUID `json:"subjects"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewCurriculum creates a new Curriculum with a generated ID and fresh
// timestamps. Returns an error if validation fails.
func NewCurriculum(careerID uuid.UUID, semester string, subjects []uuid.UUID) (*Curriculum, error) {
	curriculum := &Curriculum{
		ID:        uuid.New(),
		CareerID:  careerID,
		Semester:  semester,
		Subjects:  subjects,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := curriculum.Validate(); err != nil {
		return nil, err
	}

	return curriculum, nil
}

// Validate checks if the Curriculum has valid data.
func (c *Curriculum) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCurriculumIDEmpty
	}

	if c.CareerID == uuid.Nil {
		return ErrCurriculumCareerEmpty
	}

	if c.Semester == "" {
		return ErrCurriculumSemesterEmpty
	}

	return nil
}

// EnrichedCurriculum is a curriculum joined on the read side with the
// display names of its career and academic period.
type EnrichedCurriculum struct {
	Curriculum
	CareerName string `json:"careerName"`
	PeriodName string `json:"periodName"`
}
