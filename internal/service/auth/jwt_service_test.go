package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/config"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret is rejected", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, userID, domain.RoleTeacher)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleTeacher, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		claims, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "ffffffffffffffffffffffffffffffff",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, uuid.New(), domain.RoleStudent)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		impl := &hmacJWTService{
			signingKey:    []byte(testAuthConfig().JWTSecret),
			tokenLifetime: time.Minute,
			timeFunc:      time.Now,
		}

		// Issue the token in the past, beyond lifetime plus clock skew.
		issued := time.Now().Add(-2 * time.Hour)
		impl.timeFunc = func() time.Time { return issued }
		token, err := impl.GenerateToken(ctx, uuid.New(), domain.RoleStudent)
		require.NoError(t, err)

		impl.timeFunc = time.Now
		claims, err := impl.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, claims)
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hashed)

	assert.NoError(t, verifier.Compare(hashed, "s3cret-password"))
	assert.Error(t, verifier.Compare(hashed, "wrong-password"))
}
