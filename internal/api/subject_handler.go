package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreateSubjectRequest represents the request body for creating a
// subject.
type CreateSubjectRequest struct {
	Name          string   `json:"name"          validate:"required,min=1"`
	Credits       int      `json:"credits"       validate:"required,gt=0"`
	PeriodID      string   `json:"periodId"      validate:"required,uuid"`
	TeacherID     string   `json:"teacherId"     validate:"omitempty,uuid"`
	Prerequisites []string `json:"prerequisites" validate:"omitempty,dive,uuid"`
}

// UpdateSubjectRequest represents a partial update to a subject. A
// non-nil prerequisites list replaces the stored one.
type UpdateSubjectRequest struct {
	Name          *string  `json:"name,omitempty"`
	Credits       *int     `json:"credits,omitempty"`
	PeriodID      *string  `json:"periodId,omitempty"`
	TeacherID     *string  `json:"teacherId,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty" validate:"omitempty,dive,uuid"`
}

// EnrollStudentRequest represents the request body for enrolling a
// student in a subject.
type EnrollStudentRequest struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
}

// SubjectHandler handles subject HTTP requests.
type SubjectHandler struct {
	subjectService service.SubjectService
	validator      *validator.Validate
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjectService service.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		subjectService: subjectService,
		validator:      validator.New(),
	}
}

// CreateSubject handles POST /api/subjects requests.
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid periodId format")
		return
	}

	teacherID, err := parseOptionalUUID("teacherId", req.TeacherID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	prerequisites, err := parseUUIDList("prerequisites", req.Prerequisites)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	subject, err := h.subjectService.CreateSubject(r.Context(), req.Name, req.Credits, periodID, teacherID, prerequisites)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, subject)
}

// GetSubject handles GET /api/subjects/{id} requests.
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	subject, err := h.subjectService.GetSubject(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subject)
}

// ListSubjects handles GET /api/subjects requests.
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.ListSubjects(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subjects)
}

// UpdateSubject handles PUT /api/subjects/{id} requests.
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateSubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := service.SubjectPatch{
		Name:    req.Name,
		Credits: req.Credits,
	}

	if req.PeriodID != nil {
		periodID, err := uuid.Parse(*req.PeriodID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid periodId format")
			return
		}
		patch.PeriodID = &periodID
	}

	if req.TeacherID != nil {
		teacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid teacherId format")
			return
		}
		patch.TeacherID = &teacherID
	}

	if req.Prerequisites != nil {
		prerequisites, err := parseUUIDList("prerequisites", req.Prerequisites)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		patch.Prerequisites = prerequisites
	}

	subject, err := h.subjectService.UpdateSubject(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subject)
}

// EnrollStudent handles POST /api/subjects/{id}/enroll requests.
func (h *SubjectHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req EnrollStudentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid studentId format")
		return
	}

	subject, err := h.subjectService.EnrollStudent(r.Context(), id, studentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subject)
}

// DeleteSubject handles DELETE /api/subjects/{id} requests.
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.subjectService.DeleteSubject(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
