// Package zone provides irrigation zone record management.
package zone

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrZoneNotFound = errors.New("zone not found")
)

// Zone is a stored irrigation zone record. Zones reference their pump by
// identifier only; no referential integrity is enforced.
type Zone struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (z *Zone) Document() map[string]any {
	doc := make(map[string]any, len(z.Attrs)+3)
	for k, v := range z.Attrs {
		doc[k] = v
	}
	doc["id"] = z.ID
	doc["createdAt"] = z.CreatedAt
	doc["updatedAt"] = z.UpdatedAt
	return doc
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of zones plus the total record count.
type ListResult struct {
	Items []*Zone
	Total int
}
