package pump

import "context"

// Repository defines the interface for pump persistence.
type Repository interface {
	// Get retrieves a pump by ID.
	Get(ctx context.Context, id string) (*Pump, error)

	// List retrieves a page of pumps with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new pump.
	Create(ctx context.Context, pump *Pump) error

	// Update updates an existing pump.
	Update(ctx context.Context, pump *Pump) error

	// Delete deletes a pump.
	Delete(ctx context.Context, id string) error
}
