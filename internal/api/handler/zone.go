package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/zone"
)

// ZoneHandler handles zone endpoints.
type ZoneHandler struct {
	zones *zone.Service
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(zones *zone.Service) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// ListZones handles GET /v1/zones - list zones with pagination.
func (h *ZoneHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.zones.List(r.Context(), zone.ListOptions{Page: page, Limit: limit})
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

// CreateZone handles POST /v1/zones - create a zone.
func (h *ZoneHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.zones.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/zones/"+p.ID, p.Document())
}

// GetZone handles GET /v1/zones/{zoneId} - get a zone.
func (h *ZoneHandler) GetZone(w http.ResponseWriter, r *http.Request) {
	p, err := h.zones.Get(r.Context(), chi.URLParam(r, "zoneId"))
	if err != nil {
		respondError(w, r, err, zone.ErrZoneNotFound)
		return
	}
	response.OK(w, r, p.Document(), "")
}

// UpdateZone handles PUT /v1/zones/{zoneId} - partially update a zone.
func (h *ZoneHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.zones.Update(r.Context(), chi.URLParam(r, "zoneId"), doc)
	if err != nil {
		respondError(w, r, err, zone.ErrZoneNotFound)
		return
	}
	response.OK(w, r, p.Document(), "Zone updated")
}

// DeleteZone handles DELETE /v1/zones/{zoneId} - delete a zone.
func (h *ZoneHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := h.zones.Delete(r.Context(), chi.URLParam(r, "zoneId")); err != nil {
		respondError(w, r, err, zone.ErrZoneNotFound)
		return
	}
	response.NoContent(w, r)
}
