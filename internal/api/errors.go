package api

import (
	"errors"
	"net/http"

	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/service"
	"github.com/jpcastanov/siga-api/internal/service/auth"
	"github.com/jpcastanov/siga-api/internal/store"
)

// MapErrorToStatusCode maps service and store errors to HTTP status
// codes. Unknown errors become 500 so internals never leak.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error.
// Validation and duplicate errors carry enough detail to be actionable;
// everything unexpected collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case store.IsNotFoundError(err):
		return err.Error()

	case store.IsDuplicateError(err):
		return err.Error()

	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes the
// sanitized response, logging the underlying cause. An empty userMessage
// falls back to the safe message for the error kind.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
