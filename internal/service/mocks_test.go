package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/store"
	"github.com/stretchr/testify/require"
)

// In-memory store fakes used across the service tests. They implement
// the documented sentinel behavior of the real stores, including the
// uniqueness rules enforced by the database indexes, and keep insertion
// order so list assertions are deterministic. runTxFake satisfies
// TxRunner without a database; WithTx returns the fake itself.

func runTxFake(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// --- periods ---

type fakePeriodStore struct {
	periods []*domain.AcademicPeriod
}

func newFakePeriodStore() *fakePeriodStore {
	return &fakePeriodStore{}
}

func (f *fakePeriodStore) Create(_ context.Context, period *domain.AcademicPeriod) error {
	for _, p := range f.periods {
		if p.Name == period.Name {
			return store.ErrPeriodNameExists
		}
	}
	cp := *period
	f.periods = append(f.periods, &cp)
	return nil
}

func (f *fakePeriodStore) GetByID(_ context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
	for _, p := range f.periods {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrPeriodNotFound
}

func (f *fakePeriodStore) GetByName(_ context.Context, name string) (*domain.AcademicPeriod, error) {
	for _, p := range f.periods {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrPeriodNotFound
}

func (f *fakePeriodStore) List(_ context.Context) ([]*domain.AcademicPeriod, error) {
	out := make([]*domain.AcademicPeriod, 0, len(f.periods))
	for _, p := range f.periods {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePeriodStore) Update(_ context.Context, period *domain.AcademicPeriod) error {
	for _, p := range f.periods {
		if p.Name == period.Name && p.ID != period.ID {
			return store.ErrPeriodNameExists
		}
	}
	for i, p := range f.periods {
		if p.ID == period.ID {
			cp := *period
			f.periods[i] = &cp
			return nil
		}
	}
	return store.ErrPeriodNotFound
}

func (f *fakePeriodStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range f.periods {
		if p.ID == id {
			f.periods = append(f.periods[:i], f.periods[i+1:]...)
			return nil
		}
	}
	return store.ErrPeriodNotFound
}

func (f *fakePeriodStore) WithTx(_ *sql.Tx) store.PeriodStore { return f }

// --- careers ---

type fakeCareerStore struct {
	careers []*domain.Career
}

func newFakeCareerStore() *fakeCareerStore {
	return &fakeCareerStore{}
}

func (f *fakeCareerStore) Create(_ context.Context, career *domain.Career) error {
	for _, c := range f.careers {
		if c.Name == career.Name {
			return store.ErrCareerNameExists
		}
	}
	cp := *career
	f.careers = append(f.careers, &cp)
	return nil
}

func (f *fakeCareerStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Career, error) {
	for _, c := range f.careers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCareerNotFound
}

func (f *fakeCareerStore) GetByName(_ context.Context, name string) (*domain.Career, error) {
	for _, c := range f.careers {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCareerNotFound
}

func (f *fakeCareerStore) List(_ context.Context) ([]*domain.Career, error) {
	out := make([]*domain.Career, 0, len(f.careers))
	for _, c := range f.careers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCareerStore) Update(_ context.Context, career *domain.Career) error {
	for _, c := range f.careers {
		if c.Name == career.Name && c.ID != career.ID {
			return store.ErrCareerNameExists
		}
	}
	for i, c := range f.careers {
		if c.ID == career.ID {
			cp := *career
			f.careers[i] = &cp
			return nil
		}
	}
	return store.ErrCareerNotFound
}

func (f *fakeCareerStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.careers {
		if c.ID == id {
			f.careers = append(f.careers[:i], f.careers[i+1:]...)
			return nil
		}
	}
	return store.ErrCareerNotFound
}

func (f *fakeCareerStore) WithTx(_ *sql.Tx) store.CareerStore { return f }

// --- curricula ---

type fakeCurriculumStore struct {
	curricula []*domain.Curriculum
}

func newFakeCurriculumStore() *fakeCurriculumStore {
	return &fakeCurriculumStore{}
}

func (f *fakeCurriculumStore) Create(_ context.Context, curriculum *domain.Curriculum) error {
	for _, c := range f.curricula {
		if c.CareerID == curriculum.CareerID && c.Semester == curriculum.Semester {
			return store.ErrCurriculumExists
		}
	}
	cp := *curriculum
	f.curricula = append(f.curricula, &cp)
	return nil
}

func (f *fakeCurriculumStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Curriculum, error) {
	for _, c := range f.curricula {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCurriculumNotFound
}

func (f *fakeCurriculumStore) GetByCareerAndSemester(_ context.Context, careerID uuid.UUID, semester string) (*domain.Curriculum, error) {
	for _, c := range f.curricula {
		if c.CareerID == careerID && c.Semester == semester {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCurriculumNotFound
}

func (f *fakeCurriculumStore) List(_ context.Context) ([]*domain.Curriculum, error) {
	out := make([]*domain.Curriculum, 0, len(f.curricula))
	for _, c := range f.curricula {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCurriculumStore) Update(_ context.Context, curriculum *domain.Curriculum) error {
	for _, c := range f.curricula {
		if c.CareerID == curriculum.CareerID && c.Semester == curriculum.Semester && c.ID != curriculum.ID {
			return store.ErrCurriculumExists
		}
	}
	for i, c := range f.curricula {
		if c.ID == curriculum.ID {
			cp := *curriculum
			f.curricula[i] = &cp
			return nil
		}
	}
	return store.ErrCurriculumNotFound
}

func (f *fakeCurriculumStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.curricula {
		if c.ID == id {
			f.curricula = append(f.curricula[:i], f.curricula[i+1:]...)
			return nil
		}
	}
	return store.ErrCurriculumNotFound
}

func (f *fakeCurriculumStore) WithTx(_ *sql.Tx) store.CurriculumStore { return f }

// --- subjects ---

type fakeSubjectStore struct {
	subjects []*domain.Subject
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{}
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *domain.Subject) error {
	for _, s := range f.subjects {
		if s.Name == subject.Name && s.PeriodID == subject.PeriodID {
			return store.ErrSubjectExists
		}
	}
	cp := *subject
	f.subjects = append(f.subjects, &cp)
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Subject, error) {
	for _, s := range f.subjects {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) GetByNameAndPeriod(_ context.Context, name string, periodID uuid.UUID) (*domain.Subject, error) {
	for _, s := range f.subjects {
		if s.Name == name && s.PeriodID == periodID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) CountByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	present := make(map[uuid.UUID]bool, len(f.subjects))
	for _, s := range f.subjects {
		present[s.ID] = true
	}
	count := 0
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if present[id] && !seen[id] {
			seen[id] = true
			count++
		}
	}
	return count, nil
}

func (f *fakeSubjectStore) List(_ context.Context) ([]*domain.Subject, error) {
	out := make([]*domain.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSubjectStore) Update(_ context.Context, subject *domain.Subject) error {
	for _, s := range f.subjects {
		if s.Name == subject.Name && s.PeriodID == subject.PeriodID && s.ID != subject.ID {
			return store.ErrSubjectExists
		}
	}
	for i, s := range f.subjects {
		if s.ID == subject.ID {
			cp := *subject
			f.subjects[i] = &cp
			return nil
		}
	}
	return store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) AppendEnrollment(_ context.Context, id uuid.UUID, enrollment domain.Enrollment) error {
	for _, s := range f.subjects {
		if s.ID == id {
			s.StudentsEnrolled = append(s.StudentsEnrolled, enrollment)
			s.TotalStudents++
			return nil
		}
	}
	return store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range f.subjects {
		if s.ID == id {
			f.subjects = append(f.subjects[:i], f.subjects[i+1:]...)
			return nil
		}
	}
	return store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) WithTx(_ *sql.Tx) store.SubjectStore { return f }

// --- schedules ---

type fakeScheduleStore struct {
	schedules []*domain.Schedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{}
}

func (f *fakeScheduleStore) slotConflict(schedule *domain.Schedule) error {
	for _, s := range f.schedules {
		if s.ID == schedule.ID {
			continue
		}
		if s.Day != schedule.Day || s.Time != schedule.Time {
			continue
		}
		if schedule.Aula != "" && s.Aula == schedule.Aula {
			return store.ErrScheduleAulaTaken
		}
		if s.SubjectID == schedule.SubjectID {
			return store.ErrScheduleSubjectTaken
		}
	}
	return nil
}

func (f *fakeScheduleStore) Create(_ context.Context, schedule *domain.Schedule) error {
	if err := f.slotConflict(schedule); err != nil {
		return err
	}
	cp := *schedule
	f.schedules = append(f.schedules, &cp)
	return nil
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) GetByAulaSlot(_ context.Context, aula string, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.Aula == aula && s.Day == day && s.Time == timeRange && s.ID != exclude {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) GetBySubjectSlot(_ context.Context, subjectID uuid.UUID, day domain.Weekday, timeRange string, exclude uuid.UUID) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.SubjectID == subjectID && s.Day == day && s.Time == timeRange && s.ID != exclude {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) List(_ context.Context) ([]*domain.Schedule, error) {
	out := make([]*domain.Schedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeScheduleStore) Update(_ context.Context, schedule *domain.Schedule) error {
	if err := f.slotConflict(schedule); err != nil {
		return err
	}
	for i, s := range f.schedules {
		if s.ID == schedule.ID {
			cp := *schedule
			f.schedules[i] = &cp
			return nil
		}
	}
	return store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range f.schedules {
		if s.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) WithTx(_ *sql.Tx) store.ScheduleStore { return f }

// --- notes ---

type fakeNoteStore struct {
	notes []*domain.Note
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{}
}

func (f *fakeNoteStore) Create(_ context.Context, note *domain.Note) error {
	for _, n := range f.notes {
		if n.StudentID == note.StudentID && n.SubjectID == note.SubjectID && n.PeriodID == note.PeriodID {
			return store.ErrNoteExists
		}
	}
	cp := *note
	f.notes = append(f.notes, &cp)
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, store.ErrNoteNotFound
}

func (f *fakeNoteStore) GetByStudentSubjectPeriod(_ context.Context, studentID, subjectID, periodID, exclude uuid.UUID) (*domain.Note, error) {
	for _, n := range f.notes {
		if n.StudentID == studentID && n.SubjectID == subjectID && n.PeriodID == periodID && n.ID != exclude {
			cp := *n
			return &cp, nil
		}
	}
	return nil, store.ErrNoteNotFound
}

func (f *fakeNoteStore) List(_ context.Context) ([]*domain.Note, error) {
	out := make([]*domain.Note, 0, len(f.notes))
	for _, n := range f.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNoteStore) Update(_ context.Context, note *domain.Note) error {
	for _, n := range f.notes {
		if n.StudentID == note.StudentID && n.SubjectID == note.SubjectID && n.PeriodID == note.PeriodID && n.ID != note.ID {
			return store.ErrNoteExists
		}
	}
	for i, n := range f.notes {
		if n.ID == note.ID {
			cp := *note
			f.notes[i] = &cp
			return nil
		}
	}
	return store.ErrNoteNotFound
}

func (f *fakeNoteStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return store.ErrNoteNotFound
}

func (f *fakeNoteStore) WithTx(_ *sql.Tx) store.NoteStore { return f }

// --- users ---

type fakeUserStore struct {
	users []*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	email := strings.ToLower(user.Email)
	for _, u := range f.users {
		if strings.ToLower(u.Email) == email {
			return store.ErrEmailExists
		}
	}
	cp := *user
	cp.Email = email
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range f.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

// mustAddUser seeds a user with the given role directly into the fake.
func mustAddUser(f *fakeUserStore, role domain.Role) uuid.UUID {
	id := uuid.New()
	f.users = append(f.users, &domain.User{
		ID:             id,
		Username:       "user-" + id.String()[:8],
		Email:          id.String()[:8] + "@example.edu",
		HashedPassword: "hashed",
		Role:           role,
	})
	return id
}

// seedPeriod seeds an academic period directly into the fake.
func seedPeriod(t *testing.T, f *fakePeriodStore, name, startDate, endDate string) *domain.AcademicPeriod {
	t.Helper()
	period, err := domain.NewAcademicPeriod(name, startDate, endDate)
	require.NoError(t, err)
	require.NoError(t, f.Create(context.Background(), period))
	return period
}

// seedSubject seeds a subject directly into the fake.
func seedSubject(t *testing.T, f *fakeSubjectStore, name string, periodID uuid.UUID) *domain.Subject {
	t.Helper()
	subject, err := domain.NewSubject(name, 3, periodID, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.Create(context.Background(), subject))
	return subject
}

// seedCareer seeds a career directly into the fake.
func seedCareer(t *testing.T, f *fakeCareerStore, name string) *domain.Career {
	t.Helper()
	career, err := domain.NewCareer(name, "")
	require.NoError(t, err)
	require.NoError(t, f.Create(context.Background(), career))
	return career
}
