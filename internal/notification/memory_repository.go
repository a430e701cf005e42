package notification

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
	subscribers   map[string]*Subscriber
}

// NewInMemoryRepository creates a new in-memory notification repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		notifications: make(map[string]*Notification),
		subscribers:   make(map[string]*Subscriber),
	}
}

// Get retrieves a notification by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	return cloneNotification(n), nil
}

// List retrieves a page of notifications with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		all = append(all, cloneNotification(n))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &ListResult{Items: all[start:end], Total: len(r.notifications)}, nil
}

// ListPending retrieves notifications awaiting dispatch, oldest first.
func (r *InMemoryRepository) ListPending(_ context.Context, limit int) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var pending []*Notification
	for _, n := range r.notifications {
		if n.Status() == "pending" {
			pending = append(pending, cloneNotification(n))
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })

	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// Create creates a new notification.
func (r *InMemoryRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications[n.ID] = cloneNotification(n)
	return nil
}

// Update updates an existing notification.
func (r *InMemoryRepository) Update(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[n.ID]; !ok {
		return ErrNotificationNotFound
	}
	r.notifications[n.ID] = cloneNotification(n)
	return nil
}

// Delete deletes a notification by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.notifications, id)
	return nil
}

// GetSubscriber retrieves a subscriber by ID.
func (r *InMemoryRepository) GetSubscriber(_ context.Context, id string) (*Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subscribers[id]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	return cloneSubscriber(s), nil
}

// ListSubscribers retrieves a page of a notification's subscribers.
func (r *InMemoryRepository) ListSubscribers(_ context.Context, notificationID string, opts ListOptions) (*SubscriberListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	var all []*Subscriber
	for _, s := range r.subscribers {
		if s.NotificationID == notificationID {
			all = append(all, cloneSubscriber(s))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &SubscriberListResult{Items: all[start:end], Total: total}, nil
}

// CreateSubscriber creates a new subscriber.
func (r *InMemoryRepository) CreateSubscriber(_ context.Context, s *Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subscribers[s.ID] = cloneSubscriber(s)
	return nil
}

// UpdateSubscriber updates an existing subscriber.
func (r *InMemoryRepository) UpdateSubscriber(_ context.Context, s *Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscribers[s.ID]; !ok {
		return ErrSubscriberNotFound
	}
	r.subscribers[s.ID] = cloneSubscriber(s)
	return nil
}

// DeleteSubscriber deletes a subscriber by ID.
func (r *InMemoryRepository) DeleteSubscriber(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscribers, id)
	return nil
}

func cloneNotification(n *Notification) *Notification {
	cpy := *n
	cpy.Attrs = cloneAttrs(n.Attrs)
	return &cpy
}

func cloneSubscriber(s *Subscriber) *Subscriber {
	cpy := *s
	cpy.Attrs = cloneAttrs(s.Attrs)
	return &cpy
}

func cloneAttrs(attrs map[string]any) map[string]any {
	cpy := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cpy[k] = v
	}
	return cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
