package api

import (
	"github.com/google/uuid"
)

// Request/response structures shared by the auth endpoints.

// RegisterRequest defines the payload for the user registration endpoint.
// Role defaults to student when omitted.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=student teacher admin"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Token  string    `json:"token"`
}
