package zone

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides validated zone operations.
type Service struct {
	repo Repository
}

// NewService creates a new zone service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a zone by ID.
func (s *Service) Get(ctx context.Context, id string) (*Zone, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of zones.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// Create validates and persists a new zone record. Defaults apply to
// absent optional fields.
func (s *Service) Create(ctx context.Context, attrs map[string]any) (*Zone, error) {
	normalized, err := Rules.Validate(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	zone := &Zone{
		ID:        "zon_" + uuid.New().String()[:22],
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Update validates a partial update and merges it into an existing zone.
// Defaults do not reapply to fields the update does not supply.
func (s *Service) Update(ctx context.Context, id string, attrs map[string]any) (*Zone, error) {
	zone, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := Rules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		zone.Attrs[k] = v
	}
	zone.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Delete deletes a zone by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
