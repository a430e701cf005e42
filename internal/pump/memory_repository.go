package pump

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	pumps map[string]*Pump
}

// NewInMemoryRepository creates a new in-memory pump repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{pumps: make(map[string]*Pump)}
}

// Get retrieves a pump by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Pump, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pumps[id]
	if !ok {
		return nil, ErrPumpNotFound
	}

	cpy := clonePump(p)
	return cpy, nil
}

// List retrieves a page of pumps with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*Pump, 0, len(r.pumps))
	for _, p := range r.pumps {
		all = append(all, clonePump(p))
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

	return &ListResult{Items: all[start:end], Total: len(r.pumps)}, nil
}

// Create creates a new pump.
func (r *InMemoryRepository) Create(_ context.Context, p *Pump) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pumps[p.ID] = clonePump(p)
	return nil
}

// Update updates an existing pump.
func (r *InMemoryRepository) Update(_ context.Context, p *Pump) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pumps[p.ID]; !ok {
		return ErrPumpNotFound
	}
	r.pumps[p.ID] = clonePump(p)
	return nil
}

// Delete deletes a pump by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pumps, id)
	return nil
}

func clonePump(p *Pump) *Pump {
	cpy := *p
	cpy.Attrs = make(map[string]any, len(p.Attrs))
	for k, v := range p.Attrs {
		cpy.Attrs[k] = v
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
