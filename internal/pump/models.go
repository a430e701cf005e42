// Package pump provides pump record management.
package pump

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrPumpNotFound = errors.New("pump not found")
)

// Pump is a stored pump record. Attrs holds the schema-validated document
// fields; identity and timestamps live outside the document.
type Pump struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (p *Pump) Document() map[string]any {
	doc := make(map[string]any, len(p.Attrs)+3)
	for k, v := range p.Attrs {
		doc[k] = v
	}
	doc["id"] = p.ID
	doc["createdAt"] = p.CreatedAt
	doc["updatedAt"] = p.UpdatedAt
	return doc
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of pumps plus the total record count.
type ListResult struct {
	Items []*Pump
	Total int
}
