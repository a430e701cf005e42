package schedule

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	schedules map[string]*Schedule
}

// NewInMemoryRepository creates a new in-memory schedule repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{schedules: make(map[string]*Schedule)}
}

// Get retrieves a schedule by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.schedules[id]
	if !ok {
		return nil, ErrScheduleNotFound
	}

	cpy := cloneSchedule(p)
	return cpy, nil
}

// List retrieves a page of schedules with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*Schedule, 0, len(r.schedules))
	for _, p := range r.schedules {
		all = append(all, cloneSchedule(p))
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

	return &ListResult{Items: all[start:end], Total: len(r.schedules)}, nil
}

// Create creates a new schedule.
func (r *InMemoryRepository) Create(_ context.Context, p *Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schedules[p.ID] = cloneSchedule(p)
	return nil
}

// Update updates an existing schedule.
func (r *InMemoryRepository) Update(_ context.Context, p *Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schedules[p.ID]; !ok {
		return ErrScheduleNotFound
	}
	r.schedules[p.ID] = cloneSchedule(p)
	return nil
}

// Delete deletes a schedule by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.schedules, id)
	return nil
}

func cloneSchedule(p *Schedule) *Schedule {
	cpy := *p
	cpy.Attrs = make(map[string]any, len(p.Attrs))
	for k, v := range p.Attrs {
		cpy.Attrs[k] = v
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
