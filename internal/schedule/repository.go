package schedule

import "context"

// Repository defines the interface for schedule persistence.
type Repository interface {
	// Get retrieves a schedule by ID.
	Get(ctx context.Context, id string) (*Schedule, error)

	// List retrieves a page of schedules with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new schedule.
	Create(ctx context.Context, schedule *Schedule) error

	// Update updates an existing schedule.
	Update(ctx context.Context, schedule *Schedule) error

	// Delete deletes a schedule.
	Delete(ctx context.Context, id string) error
}
