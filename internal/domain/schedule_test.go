package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution

	subjectID := uuid.New()

	schedule, err := NewSchedule(subjectID, "Monday", "08:00-10:00", "101")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if schedule.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if schedule.Day != Monday {
		t.Errorf("Expected day %s, got %s", Monday, schedule.Day)
	}

	if schedule.Time != "08:00-10:00" {
		t.Errorf("Expected time 08:00-10:00, got %s", schedule.Time)
	}

	if schedule.Aula != "101" {
		t.Errorf("Expected aula 101, got %s", schedule.Aula)
	}

	// Aula is optional.
	schedule, err = NewSchedule(subjectID, "Friday", "14:00-16:00", "")
	if err != nil {
		t.Fatalf("Expected no error without aula, got %v", err)
	}
	if schedule.Aula != "" {
		t.Errorf("Expected empty aula, got %s", schedule.Aula)
	}

	// Invalid day.
	_, err = NewSchedule(subjectID, "Holiday", "08:00-10:00", "")
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("Expected ErrInvalidWeekday, got %v", err)
	}

	// Start must be strictly before end.
	_, err = NewSchedule(subjectID, "Monday", "10:00-08:00", "")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("Expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestScheduleValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := Schedule{
		ID:        uuid.New(),
		SubjectID: uuid.New(),
		Day:       Wednesday,
		Time:      "10:00-12:00",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := valid
	invalid.SubjectID = uuid.Nil
	if err := invalid.Validate(); err != ErrScheduleSubjectEmpty {
		t.Errorf("Expected error %v, got %v", ErrScheduleSubjectEmpty, err)
	}

	invalid = valid
	invalid.Day = "Someday"
	if err := invalid.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("Expected ErrInvalidWeekday, got %v", err)
	}

	invalid = valid
	invalid.Time = "10-12"
	if err := invalid.Validate(); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("Expected ErrInvalidTimeRange, got %v", err)
	}
}
