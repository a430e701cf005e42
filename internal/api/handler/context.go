// Package handler provides HTTP handlers for the AquaGrid API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aquagrid/aquagrid/internal/api/middleware"
	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/database"
	"github.com/aquagrid/aquagrid/internal/schema"
)

// GetUserID retrieves the authenticated user ID from the context.
// This is a convenience wrapper around middleware.GetUserID.
func GetUserID(ctx context.Context) string {
	return middleware.GetUserID(ctx)
}

// decodeBody decodes a JSON request body into a document. Writes a 400
// response and returns false on malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return nil, false
	}
	return doc, true
}

// decodeInto decodes a JSON request body into a typed request struct.
// Writes a 400 response and returns the error on malformed JSON.
func decodeInto(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return err
	}
	return nil
}

// pageParams parses ?page= and ?limit= query parameters, falling back to
// page 1 and 50 items.
func pageParams(r *http.Request) (page, limit int) {
	page = 1
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// respondError translates a service error into the matching envelope:
// validation failures map to 400 with the field-error map, duplicate
// keys to 409, the given not-found sentinels to 404, anything else to a
// generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFound ...error) {
	if verr, ok := schema.AsValidation(err); ok {
		response.ValidationFailed(w, r, verr.Fields)
		return
	}
	if errors.Is(err, database.ErrDuplicateKey) {
		response.Conflict(w, r, "a record with the same unique value already exists")
		return
	}
	for _, sentinel := range notFound {
		if errors.Is(err, sentinel) {
			response.NotFound(w, r, err.Error())
			return
		}
	}
	response.InternalError(w, r, "an unexpected error occurred")
}
