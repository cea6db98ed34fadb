package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AcademicPeriod-specific validation errors
var (
	// ErrPeriodIDEmpty is returned when a period ID is empty or nil.
	ErrPeriodIDEmpty = errors.New("academic period ID cannot be empty")

	// ErrPeriodNameEmpty is returned when a period name is empty.
	ErrPeriodNameEmpty = errors.New("academic period name cannot be empty")

	// ErrPeriodDatesInvalid is returned when the start date is not strictly
	// before the end date.
	ErrPeriodDatesInvalid = errors.New("academic period start date must be before end date")
)

// AcademicPeriod is a named time span (e.g. a semester) bounding when
// curricula, subjects, and notes are valid. Names are unique.
type AcademicPeriod struct {
	ID        uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAcademicPeriod creates a new AcademicPeriod with a generated ID and
// fresh timestamps. Returns an error if validation fails.
func NewAcademicPeriod(name, startDate, endDate string) (*AcademicPeriod, error) {
	period := &AcademicPeriod{
		ID:        uuid.New(),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := period.Validate(); err != nil {
		return nil, err
	}

	return period, nil
}

// Validate checks if the AcademicPeriod has valid data.
// Dates are kept as the opaque ISO strings the callers supply; ordering is
// checked lexically, which is correct for YYYY-MM-DD values.
func (p *AcademicPeriod) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPeriodIDEmpty
	}

	if p.Name == "" {
		return ErrPeriodNameEmpty
	}

	if p.StartDate == "" || p.EndDate == "" || p.StartDate >= p.EndDate {
		return ErrPeriodDatesInvalid
	}

	return nil
}
