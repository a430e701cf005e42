// Package waterusage provides water usage record management.
package waterusage

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrUsageNotFound = errors.New("water usage record not found")
)

// Usage is a stored water usage record for a zone over a period.
type Usage struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (u *Usage) Document() map[string]any {
	doc := make(map[string]any, len(u.Attrs)+3)
	for k, v := range u.Attrs {
		doc[k] = v
	}
	doc["id"] = u.ID
	doc["createdAt"] = u.CreatedAt
	doc["updatedAt"] = u.UpdatedAt
	return doc
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of usage records plus the total record count.
type ListResult struct {
	Items []*Usage
	Total int
}
