package zone

import "context"

// Repository defines the interface for zone persistence.
type Repository interface {
	// Get retrieves a zone by ID.
	Get(ctx context.Context, id string) (*Zone, error)

	// List retrieves a page of zones with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new zone.
	Create(ctx context.Context, zone *Zone) error

	// Update updates an existing zone.
	Update(ctx context.Context, zone *Zone) error

	// Delete deletes a zone.
	Delete(ctx context.Context, id string) error
}
