package domain

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestNewCareer(t *testing.T) {
	t.Parallel() // Enable parallel execution

	career, err := NewCareer("Systems Engineering", "Undergraduate program")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if career.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if career.CurriculumID != nil {
		t.Error("Expected curriculum link to be unset on creation")
	}

	if career.CreatedAt.IsZero() || career.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Name is required.
	_, err = NewCareer("", "missing name")
	if err != ErrCareerNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrCareerNameEmpty, err)
	}
}

func TestMergeEnrollments(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name     string
		current  []SemesterEnrollment
		incoming []SemesterEnrollment
		want     []SemesterEnrollment
	}{
		{
			name:    "new semester appended",
			current: []SemesterEnrollment{{SemesterID: "2025-1", Students: []string{"a"}}},
			incoming: []SemesterEnrollment{
				{SemesterID: "2025-2", Students: []string{"b"}},
			},
			want: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a"}},
				{SemesterID: "2025-2", Students: []string{"b"}},
			},
		},
		{
			name:    "existing semester unioned",
			current: []SemesterEnrollment{{SemesterID: "2025-1", Students: []string{"a", "b"}}},
			incoming: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"b", "c"}},
			},
			want: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a", "b", "c"}},
			},
		},
		{
			name:    "repeated incoming ids deduplicated",
			current: nil,
			incoming: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a", "a", "a"}},
			},
			want: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a"}},
			},
		},
		{
			name: "duplicates in current collapsed",
			current: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a", "a"}},
			},
			incoming: nil,
			want: []SemesterEnrollment{
				{SemesterID: "2025-1", Students: []string{"a"}},
			},
		},
		{
			name:     "both empty",
			current:  nil,
			incoming: nil,
			want:     []SemesterEnrollment{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeEnrollments(tc.current, tc.incoming)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("MergeEnrollments() = %v, want %v", got, tc.want)
			}
		})
	}
}
