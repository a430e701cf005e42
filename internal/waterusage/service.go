package waterusage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides validated usage operations.
type Service struct {
	repo Repository
}

// NewService creates a new usage service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a usage by ID.
func (s *Service) Get(ctx context.Context, id string) (*Usage, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of usage records.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// Create validates and persists a new usage record. Defaults apply to
// absent optional fields.
func (s *Service) Create(ctx context.Context, attrs map[string]any) (*Usage, error) {
	normalized, err := Rules.Validate(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	usage := &Usage{
		ID:        "wtr_" + uuid.New().String()[:22],
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// Update validates a partial update and merges it into an existing usage.
// Defaults do not reapply to fields the update does not supply.
func (s *Service) Update(ctx context.Context, id string, attrs map[string]any) (*Usage, error) {
	usage, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := Rules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		usage.Attrs[k] = v
	}
	usage.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// Delete deletes a usage by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
