package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/service/auth"
	"github.com/jpcastanov/siga-api/internal/store"
)

// ErrInvalidCredentials indicates a login attempt with an unknown email
// or a wrong password. The API layer maps this to HTTP 401 without
// distinguishing the two cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService provides account registration and authentication.
type UserService interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)

	// Authenticate verifies the credentials and returns the user together
	// with a signed access token.
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
// The plaintext password is hashed before the user reaches the store and
// cleared from the returned entity.
func (s *userServiceImpl) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password, role)
	if err != nil {
		log.Debug("invalid user data", slog.String("error", err.Error()))
		return nil, domain.NewValidationError("user", err.Error(), err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, NewInternalError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration attempted with existing email")
			return nil, err
		}
		return nil, wrapUnexpected("register", "failed to save user", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// Authenticate implements UserService.Authenticate
// Unknown emails and wrong passwords both surface as
// ErrInvalidCredentials so responses don't reveal which accounts exist.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempted with unknown email")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", wrapUnexpected("authenticate", "failed to retrieve user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempted with wrong password",
			slog.String("user_id", user.ID.String()))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", NewInternalError("authenticate", "failed to generate token", err)
	}

	log.Info("user authenticated", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("get_user", "failed to retrieve user", err)
	}
	return user, nil
}
