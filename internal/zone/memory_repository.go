package zone

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	zones map[string]*Zone
}

// NewInMemoryRepository creates a new in-memory zone repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{zones: make(map[string]*Zone)}
}

// Get retrieves a zone by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.zones[id]
	if !ok {
		return nil, ErrZoneNotFound
	}

	cpy := cloneZone(p)
	return cpy, nil
}

// List retrieves a page of zones with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*Zone, 0, len(r.zones))
	for _, p := range r.zones {
		all = append(all, cloneZone(p))
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

	return &ListResult{Items: all[start:end], Total: len(r.zones)}, nil
}

// Create creates a new zone.
func (r *InMemoryRepository) Create(_ context.Context, p *Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.zones[p.ID] = cloneZone(p)
	return nil
}

// Update updates an existing zone.
func (r *InMemoryRepository) Update(_ context.Context, p *Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[p.ID]; !ok {
		return ErrZoneNotFound
	}
	r.zones[p.ID] = cloneZone(p)
	return nil
}

// Delete deletes a zone by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.zones, id)
	return nil
}

func cloneZone(p *Zone) *Zone {
	cpy := *p
	cpy.Attrs = make(map[string]any, len(p.Attrs))
	for k, v := range p.Attrs {
		cpy.Attrs[k] = v
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
