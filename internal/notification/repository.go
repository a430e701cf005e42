package notification

import "context"

// Repository defines the interface for notification persistence.
type Repository interface {
	// Get retrieves a notification by ID.
	Get(ctx context.Context, id string) (*Notification, error)

	// List retrieves a page of notifications with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// ListPending retrieves up to limit notifications awaiting dispatch.
	ListPending(ctx context.Context, limit int) ([]*Notification, error)

	// Create creates a new notification.
	Create(ctx context.Context, n *Notification) error

	// Update updates an existing notification.
	Update(ctx context.Context, n *Notification) error

	// Delete deletes a notification.
	Delete(ctx context.Context, id string) error

	// GetSubscriber retrieves a subscriber by ID.
	GetSubscriber(ctx context.Context, id string) (*Subscriber, error)

	// ListSubscribers retrieves a page of a notification's subscribers.
	ListSubscribers(ctx context.Context, notificationID string, opts ListOptions) (*SubscriberListResult, error)

	// CreateSubscriber creates a new subscriber.
	CreateSubscriber(ctx context.Context, s *Subscriber) error

	// UpdateSubscriber updates an existing subscriber.
	UpdateSubscriber(ctx context.Context, s *Subscriber) error

	// DeleteSubscriber deletes a subscriber.
	DeleteSubscriber(ctx context.Context, id string) error
}
