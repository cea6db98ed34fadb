package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/service"
	"github.com/jpcastanov/siga-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPeriodService is a mock implementation of service.PeriodService.
type MockPeriodService struct {
	CreatePeriodFn func(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error)
	GetPeriodFn    func(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error)
	ListPeriodsFn  func(ctx context.Context) ([]*domain.AcademicPeriod, error)
	UpdatePeriodFn func(ctx context.Context, id uuid.UUID, patch service.PeriodPatch) (*domain.AcademicPeriod, error)
	DeletePeriodFn func(ctx context.Context, id uuid.UUID) error
}

func (m *MockPeriodService) CreatePeriod(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error) {
	if m.CreatePeriodFn != nil {
		return m.CreatePeriodFn(ctx, name, startDate, endDate)
	}
	return nil, nil
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
	if m.GetPeriodFn != nil {
		return m.GetPeriodFn(ctx, id)
	}
	return nil, nil
}

func (m *MockPeriodService) ListPeriods(ctx context.Context) ([]*domain.AcademicPeriod, error) {
	if m.ListPeriodsFn != nil {
		return m.ListPeriodsFn(ctx)
	}
	return nil, nil
}

func (m *MockPeriodService) UpdatePeriod(ctx context.Context, id uuid.UUID, patch service.PeriodPatch) (*domain.AcademicPeriod, error) {
	if m.UpdatePeriodFn != nil {
		return m.UpdatePeriodFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockPeriodService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	if m.DeletePeriodFn != nil {
		return m.DeletePeriodFn(ctx, id)
	}
	return nil
}

func newPeriodRouter(svc service.PeriodService) *chi.Mux {
	h := NewPeriodHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/periods", h.CreatePeriod)
	r.Get("/api/periods", h.ListPeriods)
	r.Get("/api/periods/{id}", h.GetPeriod)
	r.Put("/api/periods/{id}", h.UpdatePeriod)
	r.Delete("/api/periods/{id}", h.DeletePeriod)
	return r
}

func TestPeriodHandler_CreatePeriod(t *testing.T) {
	fixedID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTime := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockPeriodService)
		expectedStatus int
	}{
		{
			name: "successful_creation",
			body: CreatePeriodRequest{Name: "2025-1", StartDate: "2025-01-20", EndDate: "2025-06-15"},
			setupMock: func(m *MockPeriodService) {
				m.CreatePeriodFn = func(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error) {
					return &domain.AcademicPeriod{
						ID:        fixedID,
						Name:      name,
						StartDate: startDate,
						EndDate:   endDate,
						CreatedAt: fixedTime,
						UpdatedAt: fixedTime,
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_name",
			body:           CreatePeriodRequest{StartDate: "2025-01-20", EndDate: "2025-06-15"},
			setupMock:      func(m *MockPeriodService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate_name",
			body: CreatePeriodRequest{Name: "2025-1", StartDate: "2025-01-20", EndDate: "2025-06-15"},
			setupMock: func(m *MockPeriodService) {
				m.CreatePeriodFn = func(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error) {
					return nil, store.ErrPeriodNameExists
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid_dates",
			body: CreatePeriodRequest{Name: "2025-1", StartDate: "2025-06-15", EndDate: "2025-01-20"},
			setupMock: func(m *MockPeriodService) {
				m.CreatePeriodFn = func(ctx context.Context, name, startDate, endDate string) (*domain.AcademicPeriod, error) {
					return nil, domain.NewValidationError("startDate", "must be before endDate", domain.ErrValidation)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_body",
			body:           "not json",
			setupMock:      func(m *MockPeriodService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockPeriodService{}
			tc.setupMock(mock)
			router := newPeriodRouter(mock)

			var body bytes.Buffer
			if s, ok := tc.body.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tc.body))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/periods", &body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus == http.StatusCreated {
				var got domain.AcademicPeriod
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, fixedID, got.ID)
				assert.Equal(t, "2025-1", got.Name)
			}
		})
	}
}

func TestPeriodHandler_GetPeriod(t *testing.T) {
	fixedID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("found", func(t *testing.T) {
		mock := &MockPeriodService{
			GetPeriodFn: func(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
				return &domain.AcademicPeriod{ID: id, Name: "2025-1"}, nil
			},
		}
		router := newPeriodRouter(mock)

		req := httptest.NewRequest(http.MethodGet, "/api/periods/"+fixedID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mock := &MockPeriodService{
			GetPeriodFn: func(ctx context.Context, id uuid.UUID) (*domain.AcademicPeriod, error) {
				return nil, store.ErrPeriodNotFound
			},
		}
		router := newPeriodRouter(mock)

		req := httptest.NewRequest(http.MethodGet, "/api/periods/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed_id", func(t *testing.T) {
		router := newPeriodRouter(&MockPeriodService{})

		req := httptest.NewRequest(http.MethodGet, "/api/periods/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPeriodHandler_UpdatePeriod(t *testing.T) {
	fixedID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("patch_forwarded", func(t *testing.T) {
		var gotPatch service.PeriodPatch
		mock := &MockPeriodService{
			UpdatePeriodFn: func(ctx context.Context, id uuid.UUID, patch service.PeriodPatch) (*domain.AcademicPeriod, error) {
				gotPatch = patch
				return &domain.AcademicPeriod{ID: id, Name: "2025-1", EndDate: *patch.EndDate}, nil
			},
		}
		router := newPeriodRouter(mock)

		body := bytes.NewBufferString(`{"endDate":"2025-06-30"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/periods/"+fixedID.String(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gotPatch.Name)
		require.NotNil(t, gotPatch.EndDate)
		assert.Equal(t, "2025-06-30", *gotPatch.EndDate)
	})

	t.Run("empty_patch_rejected", func(t *testing.T) {
		mock := &MockPeriodService{
			UpdatePeriodFn: func(ctx context.Context, id uuid.UUID, patch service.PeriodPatch) (*domain.AcademicPeriod, error) {
				return nil, domain.NewValidationError("patch", "at least one field must be provided", domain.ErrEmptyPatch)
			},
		}
		router := newPeriodRouter(mock)

		req := httptest.NewRequest(http.MethodPut, "/api/periods/"+fixedID.String(), bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPeriodHandler_DeletePeriod(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router := newPeriodRouter(&MockPeriodService{})

		req := httptest.NewRequest(http.MethodDelete, "/api/periods/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mock := &MockPeriodService{
			DeletePeriodFn: func(ctx context.Context, id uuid.UUID) error {
				return store.ErrPeriodNotFound
			},
		}
		router := newPeriodRouter(mock)

		req := httptest.NewRequest(http.MethodDelete, "/api/periods/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
