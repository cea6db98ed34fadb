package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Career-specific validation errors
var (
	// ErrCareerIDEmpty is returned when a career ID is empty or nil.
	ErrCareerIDEmpty = errors.New("career ID cannot be empty")

	// ErrCareerNameEmpty is returned when a career name is empty.
	ErrCareerNameEmpty = errors.New("career name cannot be empty")
)

// SemesterEnrollment groups the students enrolled in a career for one
// semester. The student set is deduplicated.
type SemesterEnrollment struct {
	SemesterID string   `json:"semesterId"`
	Students   []string `json:"students"`
}

// Career represents a degree program. Each career links back to exactly
// one curriculum, assigned right after creation, and carries the
// per-semester enrollment sets of its students.
type Career struct {
	ID               uuid.UUID            `json:"uuid"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	CurriculumID     *uuid.UUID           `json:"curriculumId,omitempty"`
	EnrolledStudents []SemesterEnrollment `json:"enrolledStudents"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// NewCareer creates a new Career with a generated ID and fresh timestamps.
// The curriculum link is assigned later by the career service.
// Returns an error if validation fails.
func NewCareer(name, description string) (*Career, error) {
	career := &Career{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := career.Validate(); err != nil {
		return nil, err
	}

	return career, nil
}

// Validate checks if the Career has valid data.
func (c *Career) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCareerIDEmpty
	}

	if c.Name == "" {
		return ErrCareerNameEmpty
	}

	return nil
}

// MergeEnrollments unions incoming per-semester enrollment entries into
// the current list. Existing semesters keep their position and gain any
// new student IDs; unknown semesters are appended in incoming order.
// Student sets use set semantics, so repeated IDs never duplicate.
func MergeEnrollments(current, incoming []SemesterEnrollment) []SemesterEnrollment {
	merged := make([]SemesterEnrollment, 0, len(current)+len(incoming))
	index := make(map[string]int, len(current))
	seen := make(map[string]map[string]bool)

	for _, entry := range current {
		set := make(map[string]bool, len(entry.Students))
		students := make([]string, 0, len(entry.Students))
		for _, s := range entry.Students {
			if !set[s] {
				set[s] = true
				students = append(students, s)
			}
		}
		index[entry.SemesterID] = len(merged)
		seen[entry.SemesterID] = set
		merged = append(merged, SemesterEnrollment{SemesterID: entry.SemesterID, Students: students})
	}

	for _, entry := range incoming {
		pos, ok := index[entry.SemesterID]
		if !ok {
			index[entry.SemesterID] = len(merged)
			seen[entry.SemesterID] = make(map[string]bool)
			merged = append(merged, SemesterEnrollment{SemesterID: entry.SemesterID})
			pos = index[entry.SemesterID]
		}
		for _, s := range entry.Students {
			if !seen[entry.SemesterID][s] {
				seen[entry.SemesterID][s] = true
				merged[pos].Students = append(merged[pos].Students, s)
			}
		}
	}

	return merged
}
