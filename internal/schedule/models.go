// Package schedule provides irrigation schedule record management.
package schedule

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Schedule is a stored irrigation schedule record.
type Schedule struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (s *Schedule) Document() map[string]any {
	doc := make(map[string]any, len(s.Attrs)+3)
	for k, v := range s.Attrs {
		doc[k] = v
	}
	doc["id"] = s.ID
	doc["createdAt"] = s.CreatedAt
	doc["updatedAt"] = s.UpdatedAt
	return doc
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of schedules plus the total record count.
type ListResult struct {
	Items []*Schedule
	Total int
}
