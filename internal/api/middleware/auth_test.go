package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/config"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)
	middleware := NewAuthMiddleware(jwtService)

	newProtected := func(capture *http.Request) http.Handler {
		return middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*capture = *r
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("valid token passes through with identity in context", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		token, err := jwtService.GenerateToken(context.Background(), userID, domain.RoleTeacher)
		require.NoError(t, err)

		var captured http.Request
		req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newProtected(&captured).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		gotID, ok := GetUserID(&captured)
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		gotRole, ok := GetUserRole(&captured)
		require.True(t, ok)
		assert.Equal(t, domain.RoleTeacher, gotRole)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()
		var captured http.Request
		req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
		rec := httptest.NewRecorder()
		newProtected(&captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()
		var captured http.Request
		req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		newProtected(&captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		t.Parallel()
		var captured http.Request
		req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		newProtected(&captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
