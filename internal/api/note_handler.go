package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreateNoteRequest represents the request body for recording a grade.
// Grade is a pointer so a zero grade survives the required check.
type CreateNoteRequest struct {
	StudentID string   `json:"studentId" validate:"required,uuid"`
	SubjectID string   `json:"subjectId" validate:"required,uuid"`
	PeriodID  string   `json:"period"    validate:"required,uuid"`
	Grade     *float64 `json:"grade"     validate:"required"`
}

// UpdateNoteRequest represents a partial update to a note.
type UpdateNoteRequest struct {
	StudentID *string  `json:"studentId,omitempty"`
	SubjectID *string  `json:"subjectId,omitempty"`
	PeriodID  *string  `json:"period,omitempty"`
	Grade     *float64 `json:"grade,omitempty"`
}

// NoteHandler handles grade recording HTTP requests.
type NoteHandler struct {
	noteService service.NoteService
	validator   *validator.Validate
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validator:   validator.New(),
	}
}

// CreateNote handles POST /api/notes requests.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
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
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid subjectId format")
		return
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid period format")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), studentID, subjectID, periodID, *req.Grade)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, note)
}

// GetNote handles GET /api/notes/{id} requests.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	note, err := h.noteService.GetNote(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// ListNotes handles GET /api/notes requests.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notes)
}

// UpdateNote handles PUT /api/notes/{id} requests.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := service.NotePatch{Grade: req.Grade}

	if req.StudentID != nil {
		studentID, err := uuid.Parse(*req.StudentID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid studentId format")
			return
		}
		patch.StudentID = &studentID
	}

	if req.SubjectID != nil {
		subjectID, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid subjectId format")
			return
		}
		patch.SubjectID = &subjectID
	}

	if req.PeriodID != nil {
		periodID, err := uuid.Parse(*req.PeriodID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid period format")
			return
		}
		patch.PeriodID = &periodID
	}

	note, err := h.noteService.UpdateNote(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id} requests.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
