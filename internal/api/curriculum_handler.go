package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreateCurriculumRequest represents the request body for creating a
// curriculum. Semester names an existing academic period.
type CreateCurriculumRequest struct {
	CareerID string   `json:"careerId" validate:"required,uuid"`
	Semester string   `json:"semester" validate:"required,min=1"`
	Subjects []string `json:"subjects" validate:"omitempty,dive,uuid"`
}

// UpdateCurriculumRequest represents a partial update to a curriculum.
// A non-nil subjects list replaces the stored one.
type UpdateCurriculumRequest struct {
	Semester *string  `json:"semester,omitempty"`
	Subjects []string `json:"subjects,omitempty" validate:"omitempty,dive,uuid"`
}

// AddCurriculumSubjectRequest represents the request body for appending
// a subject to a curriculum.
type AddCurriculumSubjectRequest struct {
	SubjectID string `json:"subjectId" validate:"required,uuid"`
}

// CurriculumHandler handles curriculum HTTP requests.
type CurriculumHandler struct {
	curriculumService service.CurriculumService
	validator         *validator.Validate
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(curriculumService service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{
		curriculumService: curriculumService,
		validator:         validator.New(),
	}
}

// CreateCurriculum handles POST /api/curricula requests.
func (h *CurriculumHandler) CreateCurriculum(w http.ResponseWriter, r *http.Request) {
	var req CreateCurriculumRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	careerID, err := uuid.Parse(req.CareerID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid careerId format")
		return
	}

	subjects, err := parseUUIDList("subjects", req.Subjects)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	curriculum, err := h.curriculumService.CreateCurriculum(r.Context(), careerID, req.Semester, subjects)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, curriculum)
}

// GetCurriculum handles GET /api/curricula/{id} requests. The response
// carries the resolved career and period names.
func (h *CurriculumHandler) GetCurriculum(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	curriculum, err := h.curriculumService.GetCurriculum(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, curriculum)
}

// ListCurricula handles GET /api/curricula requests.
func (h *CurriculumHandler) ListCurricula(w http.ResponseWriter, r *http.Request) {
	curricula, err := h.curriculumService.ListCurricula(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, curricula)
}

// UpdateCurriculum handles PUT /api/curricula/{id} requests.
func (h *CurriculumHandler) UpdateCurriculum(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateCurriculumRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := service.CurriculumPatch{Semester: req.Semester}
	if req.Subjects != nil {
		subjects, err := parseUUIDList("subjects", req.Subjects)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		patch.Subjects = subjects
	}

	curriculum, err := h.curriculumService.UpdateCurriculum(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, curriculum)
}

// AddSubject handles POST /api/curricula/{id}/subjects requests.
func (h *CurriculumHandler) AddSubject(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AddCurriculumSubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid subjectId format")
		return
	}

	curriculum, err := h.curriculumService.AddSubject(r.Context(), id, subjectID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, curriculum)
}

// DeleteCurriculum handles DELETE /api/curricula/{id} requests.
func (h *CurriculumHandler) DeleteCurriculum(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.curriculumService.DeleteCurriculum(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
