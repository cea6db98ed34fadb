package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Weekday is one of the seven weekday names used by schedules.
type Weekday string

// Valid weekday values, Monday first to match academic timetables.
const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every valid weekday in order.
var Weekdays = []Weekday{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// ParseWeekday validates a day name against the weekday enumeration.
// Matching is exact; "monday" is rejected to keep stored values canonical.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a weekday name", ErrInvalidWeekday, s)
}

// timeRangePattern matches the HH:MM-HH:MM wire format with 24-hour times.
var timeRangePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeRange is a validated HH:MM-HH:MM interval within a single day.
// Start is strictly before End.
type TimeRange struct {
	Start time.Time
	End   time.Time
	raw   string
}

// String returns the canonical HH:MM-HH:MM representation.
func (r TimeRange) String() string {
	return r.raw
}

// ParseTimeRange validates an HH:MM-HH:MM string and checks that the
// start time is strictly before the end time when both are interpreted as
// times of day.
func ParseTimeRange(s string) (TimeRange, error) {
	if !timeRangePattern.MatchString(s) {
		return TimeRange{}, fmt.Errorf("%w: %q must match HH:MM-HH:MM", ErrInvalidTimeRange, s)
	}

	parts := strings.SplitN(s, "-", 2)
	start, err := time.Parse("15:04", parts[0])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	end, err := time.Parse("15:04", parts[1])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, parts[0], parts[1])
	}

	return TimeRange{Start: start, End: end, raw: s}, nil
}

// Grade bounds, inclusive on both ends.
const (
	MinGrade = 0.0
	MaxGrade = 5.0
)

// ParseGrade checks that a grade lies within the inclusive [0, 5] scale.
func ParseGrade(grade float64) error {
	if grade < MinGrade || grade > MaxGrade {
		return fmt.Errorf("%w: %.2f must be between %.1f and %.1f", ErrGradeOutOfRange, grade, MinGrade, MaxGrade)
	}
	return nil
}
