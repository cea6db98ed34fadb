package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/config"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/service/auth"
	"github.com/jpcastanov/siga-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, users *fakeUserStore) UserService {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	svc, err := NewUserService(users, auth.NewBcryptHasher(), auth.NewBcryptVerifier(), jwtService, nil)
	require.NoError(t, err)
	return svc
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores a hashed password and clears the plaintext", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newUserService(t, users)

		user, err := svc.Register(ctx, "ana", "ana@example.edu", "s3cret-password", domain.RoleStudent)
		require.NoError(t, err)
		assert.Empty(t, user.Password)
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "s3cret-password", user.HashedPassword)
		assert.Equal(t, domain.RoleStudent, user.Role)
	})

	t.Run("rejects a duplicate email regardless of case", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(t, newFakeUserStore())

		_, err := svc.Register(ctx, "ana", "ana@example.edu", "s3cret-password", domain.RoleStudent)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ana2", "Ana@Example.edu", "another-password", domain.RoleTeacher)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects invalid user data", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(t, newFakeUserStore())

		_, err := svc.Register(ctx, "ana", "not-an-email", "s3cret-password", domain.RoleStudent)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns the user and a token on valid credentials", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newUserService(t, users)

		registered, err := svc.Register(ctx, "ana", "ana@example.edu", "s3cret-password", domain.RoleTeacher)
		require.NoError(t, err)

		user, token, err := svc.Authenticate(ctx, "ana@example.edu", "s3cret-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("matches the email case-insensitively", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(t, newFakeUserStore())

		_, err := svc.Register(ctx, "ana", "ana@example.edu", "s3cret-password", domain.RoleStudent)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, "ANA@example.edu", "s3cret-password")
		assert.NoError(t, err)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(t, newFakeUserStore())

		_, err := svc.Register(ctx, "ana", "ana@example.edu", "s3cret-password", domain.RoleStudent)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, "ana@example.edu", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(t, newFakeUserStore())

		_, _, err := svc.Authenticate(ctx, "nobody@example.edu", "s3cret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserStore()
	svc := newUserService(t, users)

	id := mustAddUser(users, domain.RoleTeacher)

	user, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
