package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides validated schedule operations.
type Service struct {
	repo Repository
}

// NewService creates a new schedule service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a schedule by ID.
func (s *Service) Get(ctx context.Context, id string) (*Schedule, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of schedules.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// Create validates and persists a new schedule record. Defaults apply to
// absent optional fields.
func (s *Service) Create(ctx context.Context, attrs map[string]any) (*Schedule, error) {
	normalized, err := Rules.Validate(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	schedule := &Schedule{
		ID:        "sch_" + uuid.New().String()[:22],
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Update validates a partial update and merges it into an existing schedule.
// Defaults do not reapply to fields the update does not supply.
func (s *Service) Update(ctx context.Context, id string, attrs map[string]any) (*Schedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := Rules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		schedule.Attrs[k] = v
	}
	schedule.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Delete deletes a schedule by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
