package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Schedule-specific validation errors
var (
	// ErrScheduleIDEmpty is returned when a schedule ID is empty or nil.
	ErrScheduleIDEmpty = errors.New("schedule ID cannot be empty")

	// ErrScheduleSubjectEmpty is returned when a schedule's subject ID is empty.
	ErrScheduleSubjectEmpty = errors.New("schedule subject ID cannot be empty")
)

// Schedule places a subject in a weekly timetable slot, optionally bound
// to a classroom ("aula"). Conflicts are exact (day, time) matches: two
// schedules may not share (aula, day, time) nor (subjectId, day, time).
type Schedule struct {
	ID        uuid.UUID `json:"uuid"`
	SubjectID uuid.UUID `json:"subjectId"`
	Day       Weekday   `json:"day"`
	Time      string    `json:"time"`
	Aula      string    `json:"aula,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSchedule creates a new Schedule with a generated ID and fresh
// timestamps. Day and time are validated through the shared parsers.
// Returns an error if validation fails.
func NewSchedule(subjectID uuid.UUID, day, timeRange, aula string) (*Schedule, error) {
	weekday, err := ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	rng, err := ParseTimeRange(timeRange)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Day:       weekday,
		Time:      rng.String(),
		Aula:      aula,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks if the Schedule has valid data.
func (s *Schedule) Validate() error {
	if s.ID == uuid.Nil {
		return ErrScheduleIDEmpty
	}

	if s.SubjectID == uuid.Nil {
		return ErrScheduleSubjectEmpty
	}

	if _, err := ParseWeekday(string(s.Day)); err != nil {
		return err
	}

	if _, err := ParseTimeRange(s.Time); err != nil {
		return err
	}

	return nil
}
