package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/schedule"
)

// ScheduleHandler handles schedule endpoints.
type ScheduleHandler struct {
	schedules *schedule.Service
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedules *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// ListSchedules handles GET /v1/schedules - list schedules with pagination.
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.schedules.List(r.Context(), schedule.ListOptions{Page: page, Limit: limit})
	if err != nil {
		respondError(w, r, err)
		return
	}

	docs := make([]map[string]any, 0, len(result.Items))
	for _, p := range result.Items {
		docs = append(docs, p.Document())
	}
	response.Paginated(w, r, docs, result.Total, page, limit)
}

// CreateSchedule handles POST /v1/schedules - create a schedule.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.schedules.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/schedules/"+p.ID, p.Document())
}

// GetSchedule handles GET /v1/schedules/{scheduleId} - get a schedule.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	p, err := h.schedules.Get(r.Context(), chi.URLParam(r, "scheduleId"))
	if err != nil {
		respondError(w, r, err, schedule.ErrScheduleNotFound)
		return
	}
	response.OK(w, r, p.Document(), "")
}

// UpdateSchedule handles PUT /v1/schedules/{scheduleId} - partially update a schedule.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.schedules.Update(r.Context(), chi.URLParam(r, "scheduleId"), doc)
	if err != nil {
		respondError(w, r, err, schedule.ErrScheduleNotFound)
		return
	}
	response.OK(w, r, p.Document(), "Schedule updated")
}

// DeleteSchedule handles DELETE /v1/schedules/{scheduleId} - delete a schedule.
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.schedules.Delete(r.Context(), chi.URLParam(r, "scheduleId")); err != nil {
		respondError(w, r, err, schedule.ErrScheduleNotFound)
		return
	}
	response.NoContent(w, r)
}
