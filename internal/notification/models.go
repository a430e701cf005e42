// Package notification provides notification and subscriber record
// management, including the pending-dispatch queue drained by the worker.
package notification

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSubscriberNotFound   = errors.New("notification subscriber not found")
)

// Notification is a stored notification record produced by a module
// action, carrying a payload to deliver to its subscribers.
type Notification struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (n *Notification) Document() map[string]any {
	doc := make(map[string]any, len(n.Attrs)+3)
	for k, v := range n.Attrs {
		doc[k] = v
	}
	doc["id"] = n.ID
	doc["createdAt"] = n.CreatedAt
	doc["updatedAt"] = n.UpdatedAt
	return doc
}

// Status returns the notification's dispatch status.
func (n *Notification) Status() string {
	s, _ := n.Attrs["status"].(string)
	return s
}

// Subscriber links a notification to a user over a delivery channel.
type Subscriber struct {
	ID             string
	NotificationID string
	Attrs          map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Document returns the full JSON document for API responses.
func (s *Subscriber) Document() map[string]any {
	doc := make(map[string]any, len(s.Attrs)+3)
	for k, v := range s.Attrs {
		doc[k] = v
	}
	doc["id"] = s.ID
	doc["createdAt"] = s.CreatedAt
	doc["updatedAt"] = s.UpdatedAt
	return doc
}

// Channel returns the subscriber's delivery channel.
func (s *Subscriber) Channel() string {
	c, _ := s.Attrs["channel"].(string)
	return c
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of notifications plus the total record count.
type ListResult struct {
	Items []*Notification
	Total int
}

// SubscriberListResult is one page of subscribers plus the total count.
type SubscriberListResult struct {
	Items []*Subscriber
	Total int
}
