package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/waterusage"
)

// WaterUsageHandler handles water usage record endpoints.
type WaterUsageHandler struct {
	records *waterusage.Service
}

// NewWaterUsageHandler creates a new WaterUsageHandler.
func NewWaterUsageHandler(records *waterusage.Service) *WaterUsageHandler {
	return &WaterUsageHandler{records: records}
}

// ListUsage handles GET /v1/water-usage - list usage records with pagination.
func (h *WaterUsageHandler) ListUsage(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.records.List(r.Context(), waterusage.ListOptions{Page: page, Limit: limit})
	if err != nil {
		respondError(w, r, err)
		return
	}

	docs := make([]map[string]any, 0, len(result.Items))
	for _, u := range result.Items {
		docs = append(docs, u.Document())
	}
	response.Paginated(w, r, docs, result.Total, page, limit)
}

// CreateUsage handles POST /v1/water-usage - record a watering run.
func (h *WaterUsageHandler) CreateUsage(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	u, err := h.records.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/water-usage/"+u.ID, u.Document())
}

// GetUsage handles GET /v1/water-usage/{usageId} - get a usage record.
func (h *WaterUsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	u, err := h.records.Get(r.Context(), chi.URLParam(r, "usageId"))
	if err != nil {
		respondError(w, r, err, waterusage.ErrUsageNotFound)
		return
	}
	response.OK(w, r, u.Document(), "")
}

// UpdateUsage handles PUT /v1/water-usage/{usageId} - partially update a usage record.
func (h *WaterUsageHandler) UpdateUsage(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	u, err := h.records.Update(r.Context(), chi.URLParam(r, "usageId"), doc)
	if err != nil {
		respondError(w, r, err, waterusage.ErrUsageNotFound)
		return
	}
	response.OK(w, r, u.Document(), "Usage record updated")
}

// DeleteUsage handles DELETE /v1/water-usage/{usageId} - delete a usage record.
func (h *WaterUsageHandler) DeleteUsage(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), chi.URLParam(r, "usageId")); err != nil {
		respondError(w, r, err, waterusage.ErrUsageNotFound)
		return
	}
	response.NoContent(w, r)
}
