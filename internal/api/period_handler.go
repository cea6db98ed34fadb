package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jpcastanov/siga-api/internal/api/shared"
	"github.com/jpcastanov/siga-api/internal/service"
)

// CreatePeriodRequest represents the request body for creating an
// academic period. Dates use the YYYY-MM-DD format.
type CreatePeriodRequest struct {
	Name      string `json:"name"      validate:"required,min=1"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"   validate:"required"`
}

// UpdatePeriodRequest represents a partial update to an academic period.
type UpdatePeriodRequest struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

// PeriodHandler handles academic period HTTP requests.
type PeriodHandler struct {
	periodService service.PeriodService
	validator     *validator.Validate
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
		validator:     validator.New(),
	}
}

// CreatePeriod handles POST /api/periods requests.
func (h *PeriodHandler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req CreatePeriodRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	period, err := h.periodService.CreatePeriod(r.Context(), req.Name, req.StartDate, req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, period)
}

// GetPeriod handles GET /api/periods/{id} requests.
func (h *PeriodHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	period, err := h.periodService.GetPeriod(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, period)
}

// ListPeriods handles GET /api/periods requests.
func (h *PeriodHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodService.ListPeriods(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, periods)
}

// UpdatePeriod handles PUT /api/periods/{id} requests.
func (h *PeriodHandler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePeriodRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	period, err := h.periodService.UpdatePeriod(r.Context(), id, service.PeriodPatch{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, period)
}

// DeletePeriod handles DELETE /api/periods/{id} requests.
func (h *PeriodHandler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.periodService.DeletePeriod(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
