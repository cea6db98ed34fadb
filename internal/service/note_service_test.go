package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	svc      NoteService
	notes    *fakeNoteStore
	subjects *fakeSubjectStore
	periods  *fakePeriodStore
	users    *fakeUserStore
}

func newNoteFixture(t *testing.T) noteFixture {
	t.Helper()
	f := noteFixture{
		notes:    newFakeNoteStore(),
		subjects: newFakeSubjectStore(),
		periods:  newFakePeriodStore(),
		users:    newFakeUserStore(),
	}
	svc, err := NewNoteService(f.notes, f.subjects, f.periods, f.users, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

// seedNoteRefs seeds a student, subject and period and returns their IDs.
func seedNoteRefs(t *testing.T, f noteFixture) (studentID, subjectID, periodID uuid.UUID) {
	t.Helper()
	period := seedPeriod(t, f.periods, "2025-1", "2025-01-20", "2025-06-15")
	subject := seedSubject(t, f.subjects, "Algorithms", period.ID)
	student := mustAddUser(f.users, domain.RoleStudent)
	return student, subject.ID, period.ID
}

func TestCreateNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("records a grade", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		note, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 4.5)
		require.NoError(t, err)
		assert.Equal(t, studentID, note.StudentID)
		assert.Equal(t, subjectID, note.SubjectID)
		assert.Equal(t, periodID, note.PeriodID)
		assert.InDelta(t, 4.5, note.Grade, 0.0001)
	})

	t.Run("accepts the grade scale boundaries", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)
		otherStudent := mustAddUser(f.users, domain.RoleStudent)

		_, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 0)
		assert.NoError(t, err)

		_, err = f.svc.CreateNote(ctx, otherStudent, subjectID, periodID, 5)
		assert.NoError(t, err)
	})

	t.Run("rejects an out of range grade", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		_, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 5.1)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.ErrorIs(t, err, domain.ErrGradeOutOfRange)

		_, err = f.svc.CreateNote(ctx, studentID, subjectID, periodID, -0.1)
		assert.ErrorIs(t, err, domain.ErrGradeOutOfRange)
	})

	t.Run("rejects a second note for the same triple", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		_, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
		require.NoError(t, err)

		_, err = f.svc.CreateNote(ctx, studentID, subjectID, periodID, 4.0)
		assert.ErrorIs(t, err, store.ErrNoteExists)
	})

	t.Run("rejects a grade for a non-student", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		_, subjectID, periodID := seedNoteRefs(t, f)
		teacherID := mustAddUser(f.users, domain.RoleTeacher)

		_, err := f.svc.CreateNote(ctx, teacherID, subjectID, periodID, 3.0)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "studentId", validationErr.Field)
	})

	t.Run("rejects an unknown subject", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, _, periodID := seedNoteRefs(t, f)

		_, err := f.svc.CreateNote(ctx, studentID, uuid.New(), periodID, 3.0)
		assert.ErrorIs(t, err, store.ErrSubjectNotFound)
	})
}

func TestUpdateNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("changes the grade", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		note, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
		require.NoError(t, err)

		grade := 4.2
		updated, err := f.svc.UpdateNote(ctx, note.ID, NotePatch{Grade: &grade})
		require.NoError(t, err)
		assert.InDelta(t, 4.2, updated.Grade, 0.0001)
	})

	t.Run("rejects an update that collides with another note", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)
		otherStudent := mustAddUser(f.users, domain.RoleStudent)

		_, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
		require.NoError(t, err)
		note, err := f.svc.CreateNote(ctx, otherStudent, subjectID, periodID, 4.0)
		require.NoError(t, err)

		_, err = f.svc.UpdateNote(ctx, note.ID, NotePatch{StudentID: &studentID})
		assert.ErrorIs(t, err, store.ErrNoteExists)
	})

	t.Run("rejects an out of range grade", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		note, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
		require.NoError(t, err)

		grade := 6.0
		_, err = f.svc.UpdateNote(ctx, note.ID, NotePatch{Grade: &grade})
		assert.ErrorIs(t, err, domain.ErrGradeOutOfRange)
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		t.Parallel()
		f := newNoteFixture(t)
		studentID, subjectID, periodID := seedNoteRefs(t, f)

		note, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
		require.NoError(t, err)

		_, err = f.svc.UpdateNote(ctx, note.ID, NotePatch{})
		assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	})
}

func TestDeleteNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newNoteFixture(t)
	studentID, subjectID, periodID := seedNoteRefs(t, f)

	note, err := f.svc.CreateNote(ctx, studentID, subjectID, periodID, 3.0)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNote(ctx, note.ID))

	_, err = f.svc.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}
