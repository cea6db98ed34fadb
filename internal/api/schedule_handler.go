package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreateScheduleRequest represents the request body for creating a
// schedule. Time uses the HH:MM-HH:MM format; aula is optional.
type CreateScheduleRequest struct {
	SubjectID string `json:"subjectId" validate:"required,uuid"`
	Day       string `json:"day"       validate:"required"`
	Time      string `json:"time"      validate:"required"`
	Aula      string `json:"aula"`
}

// UpdateScheduleRequest represents a partial update to a schedule.
type UpdateScheduleRequest struct {
	SubjectID *string `json:"subjectId,omitempty"`
	Day       *string `json:"day,omitempty"`
	Time      *string `json:"time,omitempty"`
	Aula      *string `json:"aula,omitempty"`
}

// ScheduleHandler handles schedule HTTP requests.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	validator       *validator.Validate
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		validator:       validator.New(),
	}
}

// CreateSchedule handles POST /api/schedules requests.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
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

	schedule, err := h.scheduleService.CreateSchedule(r.Context(), subjectID, req.Day, req.Time, req.Aula)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, schedule)
}

// GetSchedule handles GET /api/schedules/{id} requests.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	schedule, err := h.scheduleService.GetSchedule(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, schedule)
}

// ListSchedules handles GET /api/schedules requests.
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListSchedules(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, schedules)
}

// UpdateSchedule handles PUT /api/schedules/{id} requests.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateScheduleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := service.SchedulePatch{
		Day:  req.Day,
		Time: req.Time,
		Aula: req.Aula,
	}

	if req.SubjectID != nil {
		subjectID, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid subjectId format")
			return
		}
		patch.SubjectID = &subjectID
	}

	schedule, err := h.scheduleService.UpdateSchedule(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, schedule)
}

// DeleteSchedule handles DELETE /api/schedules/{id} requests.
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.scheduleService.DeleteSchedule(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
