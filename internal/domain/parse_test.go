package domain

import (
	"errors"
	"testing"
)

func TestParseWeekday(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for _, d := range Weekdays {
		got, err := ParseWeekday(string(d))
		if err != nil {
			t.Errorf("Expected no error for %s, got %v", d, err)
		}
		if got != d {
			t.Errorf("Expected %s, got %s", d, got)
		}
	}

	invalid := []string{"", "monday", "MONDAY", "Mon", "Lunes", "Funday"}
	for _, s := range invalid {
		if _, err := ParseWeekday(s); !errors.Is(err, ErrInvalidWeekday) {
			t.Errorf("Expected ErrInvalidWeekday for %q, got %v", s, err)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := []string{"08:00-10:00", "00:00-23:59", "13:30-13:31"}
	for _, s := range valid {
		rng, err := ParseTimeRange(s)
		if err != nil {
			t.Errorf("Expected no error for %q, got %v", s, err)
		}
		if rng.String() != s {
			t.Errorf("Expected canonical form %q, got %q", s, rng.String())
		}
		if !rng.Start.Before(rng.End) {
			t.Errorf("Expected start before end for %q", s)
		}
	}

	invalid := []string{
		"",
		"8:00-10:00",    // missing leading zero
		"08:00",         // no end
		"08:00 - 10:00", // spaces
		"24:00-25:00",   // out-of-range hour
		"08:60-09:00",   // out-of-range minute
		"10:00-08:00",   // start after end
		"10:00-10:00",   // start equals end
	}
	for _, s := range invalid {
		if _, err := ParseTimeRange(s); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("Expected ErrInvalidTimeRange for %q, got %v", s, err)
		}
	}
}

func TestParseGrade(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Boundary values are inclusive.
	for _, g := range []float64{0, 2.5, 4.5, 5} {
		if err := ParseGrade(g); err != nil {
			t.Errorf("Expected no error for %v, got %v", g, err)
		}
	}

	for _, g := range []float64{-0.1, 5.1, 100} {
		if err := ParseGrade(g); !errors.Is(err, ErrGradeOutOfRange) {
			t.Errorf("Expected ErrGradeOutOfRange for %v, got %v", g, err)
		}
	}
}
