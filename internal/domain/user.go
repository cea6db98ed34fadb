package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role tags a user as a student, teacher, or admin. Subject and note
// services use it to validate teacherId/studentId references.
type Role string

// Possible user roles
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Common validation errors for User
var (
	ErrUserIDEmpty         = errors.New("user ID cannot be empty")
	ErrUsernameEmpty       = errors.New("username cannot be empty")
	ErrEmailEmpty          = errors.New("email cannot be empty")
	ErrEmailInvalid        = errors.New("invalid email format")
	ErrPasswordEmpty       = errors.New("password cannot be empty")
	ErrHashedPasswordEmpty = errors.New("hashed password cannot be empty")
	ErrRoleInvalid         = errors.New("invalid user role")
)

// User represents an account in the academic records system.
type User struct {
	ID             uuid.UUID `json:"uuid"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, email, password,
// and role. It generates a new UUID and sets the timestamps.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing it before storage.
func NewUser(username, email, password string, role Role) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Username == "" {
		return ErrUsernameEmpty
	}

	if u.Email == "" {
		return ErrEmailEmpty
	}

	if !validEmail(u.Email) {
		return ErrEmailInvalid
	}

	if u.Password == "" && u.HashedPassword == "" {
		return ErrPasswordEmpty
	}

	if !isValidRole(u.Role) {
		return ErrRoleInvalid
	}

	return nil
}

// validEmail performs a basic structural check: one @ with a dotted,
// non-empty domain.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// isValidRole checks if the given role is a valid Role.
func isValidRole(role Role) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}
