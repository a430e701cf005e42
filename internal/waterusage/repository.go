package waterusage

import "context"

// Repository defines the interface for usage persistence.
type Repository interface {
	// Get retrieves a usage by ID.
	Get(ctx context.Context, id string) (*Usage, error)

	// List retrieves a page of usage records with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new usage.
	Create(ctx context.Context, usage *Usage) error

	// Update updates an existing usage.
	Update(ctx context.Context, usage *Usage) error

	// Delete deletes a usage.
	Delete(ctx context.Context, id string) error
}
