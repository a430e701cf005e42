package waterusage

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	records map[string]*Usage
}

// NewInMemoryRepository creates a new in-memory usage repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]*Usage)}
}

// Get retrieves a usage by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Usage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[id]
	if !ok {
		return nil, ErrUsageNotFound
	}

	cpy := cloneUsage(p)
	return cpy, nil
}

// List retrieves a page of usage records with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*Usage, 0, len(r.records))
	for _, p := range r.records {
		all = append(all, cloneUsage(p))
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

	return &ListResult{Items: all[start:end], Total: len(r.records)}, nil
}

// Create creates a new usage.
func (r *InMemoryRepository) Create(_ context.Context, p *Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[p.ID] = cloneUsage(p)
	return nil
}

// Update updates an existing usage.
func (r *InMemoryRepository) Update(_ context.Context, p *Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[p.ID]; !ok {
		return ErrUsageNotFound
	}
	r.records[p.ID] = cloneUsage(p)
	return nil
}

// Delete deletes a usage by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, id)
	return nil
}

func cloneUsage(p *Usage) *Usage {
	cpy := *p
	cpy.Attrs = make(map[string]any, len(p.Attrs))
	for k, v := range p.Attrs {
		cpy.Attrs[k] = v
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
