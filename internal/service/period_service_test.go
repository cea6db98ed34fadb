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

func newPeriodService(t *testing.T, periods *fakePeriodStore) PeriodService {
	t.Helper()
	svc, err := NewPeriodService(periods, nil)
	require.NoError(t, err)
	return svc
}

func TestCreatePeriod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a valid period", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		period, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
		require.NoError(t, err)
		assert.Equal(t, "2025-1", period.Name)
		assert.NotEqual(t, uuid.Nil, period.ID)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		_, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
		require.NoError(t, err)

		_, err = svc.CreatePeriod(ctx, "2025-1", "2025-07-01", "2025-12-15")
		assert.ErrorIs(t, err, store.ErrPeriodNameExists)
	})

	t.Run("rejects start date not before end date", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		_, err := svc.CreatePeriod(ctx, "2025-1", "2025-06-15", "2025-01-20")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestUpdatePeriod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()
		periods := newFakePeriodStore()
		svc := newPeriodService(t, periods)

		created, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
		require.NoError(t, err)

		newEnd := "2025-06-30"
		updated, err := svc.UpdatePeriod(ctx, created.ID, PeriodPatch{EndDate: &newEnd})
		require.NoError(t, err)
		assert.Equal(t, "2025-06-30", updated.EndDate)
		assert.Equal(t, "2025-1", updated.Name)
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		created, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
		require.NoError(t, err)

		_, err = svc.UpdatePeriod(ctx, created.ID, PeriodPatch{})
		assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	})

	t.Run("rejects renaming to a taken name", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		_, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
		require.NoError(t, err)
		second, err := svc.CreatePeriod(ctx, "2025-2", "2025-07-01", "2025-12-15")
		require.NoError(t, err)

		taken := "2025-1"
		_, err = svc.UpdatePeriod(ctx, second.ID, PeriodPatch{Name: &taken})
		assert.ErrorIs(t, err, store.ErrPeriodNameExists)
	})

	t.Run("returns not found for an unknown period", func(t *testing.T) {
		t.Parallel()
		svc := newPeriodService(t, newFakePeriodStore())

		name := "2026-1"
		_, err := svc.UpdatePeriod(ctx, uuid.New(), PeriodPatch{Name: &name})
		assert.ErrorIs(t, err, store.ErrPeriodNotFound)
	})
}

func TestDeletePeriod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newPeriodService(t, newFakePeriodStore())

	created, err := svc.CreatePeriod(ctx, "2025-1", "2025-01-20", "2025-06-15")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePeriod(ctx, created.ID))

	_, err = svc.GetPeriod(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrPeriodNotFound)
}
