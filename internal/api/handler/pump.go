package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/pump"
)

// PumpHandler handles pump endpoints.
type PumpHandler struct {
	pumps *pump.Service
}

// NewPumpHandler creates a new PumpHandler.
func NewPumpHandler(pumps *pump.Service) *PumpHandler {
	return &PumpHandler{pumps: pumps}
}

// ListPumps handles GET /v1/pumps - list pumps with pagination.
func (h *PumpHandler) ListPumps(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.pumps.List(r.Context(), pump.ListOptions{Page: page, Limit: limit})
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

// CreatePump handles POST /v1/pumps - create a pump.
func (h *PumpHandler) CreatePump(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.pumps.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/pumps/"+p.ID, p.Document())
}

// GetPump handles GET /v1/pumps/{pumpId} - get a pump.
func (h *PumpHandler) GetPump(w http.ResponseWriter, r *http.Request) {
	p, err := h.pumps.Get(r.Context(), chi.URLParam(r, "pumpId"))
	if err != nil {
		respondError(w, r, err, pump.ErrPumpNotFound)
		return
	}
	response.OK(w, r, p.Document(), "")
}

// UpdatePump handles PUT /v1/pumps/{pumpId} - partially update a pump.
func (h *PumpHandler) UpdatePump(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.pumps.Update(r.Context(), chi.URLParam(r, "pumpId"), doc)
	if err != nil {
		respondError(w, r, err, pump.ErrPumpNotFound)
		return
	}
	response.OK(w, r, p.Document(), "Pump updated")
}

// DeletePump handles DELETE /v1/pumps/{pumpId} - delete a pump.
func (h *PumpHandler) DeletePump(w http.ResponseWriter, r *http.Request) {
	if err := h.pumps.Delete(r.Context(), chi.URLParam(r, "pumpId")); err != nil {
		respondError(w, r, err, pump.ErrPumpNotFound)
		return
	}
	response.NoContent(w, r)
}
