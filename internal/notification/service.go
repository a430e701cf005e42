package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides validated notification operations.
type Service struct {
	repo Repository
}

// NewService creates a new notification service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a notification by ID.
func (s *Service) Get(ctx context.Context, id string) (*Notification, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of notifications.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// ListPending retrieves notifications awaiting dispatch.
func (s *Service) ListPending(ctx context.Context, limit int) ([]*Notification, error) {
	return s.repo.ListPending(ctx, limit)
}

// Create validates and persists a new notification.
func (s *Service) Create(ctx context.Context, attrs map[string]any) (*Notification, error) {
	normalized, err := Rules.Validate(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	n := &Notification{
		ID:        "ntf_" + uuid.New().String()[:22],
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update validates a partial update and merges it into an existing
// notification.
func (s *Service) Update(ctx context.Context, id string, attrs map[string]any) (*Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := Rules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		n.Attrs[k] = v
	}
	n.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete deletes a notification by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SetStatus moves a notification to the given dispatch status.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	patch, err := Rules.ValidatePartial(map[string]any{"status": status})
	if err != nil {
		return err
	}

	n.Attrs["status"] = patch["status"]
	n.UpdatedAt = time.Now()
	return s.repo.Update(ctx, n)
}

// GetSubscriber retrieves a subscriber by ID.
func (s *Service) GetSubscriber(ctx context.Context, id string) (*Subscriber, error) {
	return s.repo.GetSubscriber(ctx, id)
}

// ListSubscribers retrieves a page of a notification's subscribers.
func (s *Service) ListSubscribers(ctx context.Context, notificationID string, opts ListOptions) (*SubscriberListResult, error) {
	return s.repo.ListSubscribers(ctx, notificationID, opts)
}

// Subscribe validates and persists a new subscriber for a notification.
func (s *Service) Subscribe(ctx context.Context, notificationID string, attrs map[string]any) (*Subscriber, error) {
	if _, err := s.repo.Get(ctx, notificationID); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["notificationId"] = notificationID

	normalized, err := SubscriberRules.Validate(merged)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &Subscriber{
		ID:             "sub_" + uuid.New().String()[:22],
		NotificationID: notificationID,
		Attrs:          normalized,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubscriber validates a partial update of a subscriber.
func (s *Service) UpdateSubscriber(ctx context.Context, id string, attrs map[string]any) (*Subscriber, error) {
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := SubscriberRules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		sub.Attrs[k] = v
	}
	sub.UpdatedAt = time.Now()

	if err := s.repo.UpdateSubscriber(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe deletes a subscriber by ID.
func (s *Service) Unsubscribe(ctx context.Context, id string) error {
	if _, err := s.repo.GetSubscriber(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteSubscriber(ctx, id)
}

// MarkSeen stamps a subscriber as having seen its notification.
func (s *Service) MarkSeen(ctx context.Context, id string) (*Subscriber, error) {
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Attrs["seen"] = true
	sub.Attrs["seenAt"] = time.Now()
	sub.UpdatedAt = time.Now()

	if err := s.repo.UpdateSubscriber(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// MarkDelivered stamps a subscriber's delivery time. Used by the dispatch
// worker after a successful send.
func (s *Service) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return err
	}

	sub.Attrs["sentAt"] = at
	sub.UpdatedAt = time.Now()
	return s.repo.UpdateSubscriber(ctx, sub)
}
