package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/domain"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreateCareerRequest represents the request body for creating a career.
type CreateCareerRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// UpdateCareerRequest represents a partial update to a career. A non-nil
// enrolledStudents list is merged into the stored one per semester.
type UpdateCareerRequest struct {
	Name             *string                     `json:"name,omitempty"`
	Description      *string                     `json:"description,omitempty"`
	EnrolledStudents []domain.SemesterEnrollment `json:"enrolledStudents,omitempty"`
}

// CareerHandler handles career HTTP requests.
type CareerHandler struct {
	careerService service.CareerService
	validator     *validator.Validate
}

// NewCareerHandler creates a new CareerHandler.
func NewCareerHandler(careerService service.CareerService) *CareerHandler {
	return &CareerHandler{
		careerService: careerService,
		validator:     validator.New(),
	}
}

// CreateCareer handles POST /api/careers requests. The career is created
// together with its default curriculum.
func (h *CareerHandler) CreateCareer(w http.ResponseWriter, r *http.Request) {
	var req CreateCareerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	career, err := h.careerService.CreateCareer(r.Context(), req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, career)
}

// GetCareer handles GET /api/careers/{id} requests.
func (h *CareerHandler) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	career, err := h.careerService.GetCareer(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, career)
}

// ListCareers handles GET /api/careers requests.
func (h *CareerHandler) ListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.careerService.ListCareers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, careers)
}

// UpdateCareer handles PUT /api/careers/{id} requests.
func (h *CareerHandler) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateCareerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	career, err := h.careerService.UpdateCareer(r.Context(), id, service.CareerPatch{
		Name:             req.Name,
		Description:      req.Description,
		EnrolledStudents: req.EnrolledStudents,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, career)
}

// DeleteCareer handles DELETE /api/careers/{id} requests.
func (h *CareerHandler) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.careerService.DeleteCareer(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
