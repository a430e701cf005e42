package auth

import (
	"context"
	"sync"
	"time"

	"github.com/aquagrid/aquagrid/internal/database"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryRepository creates a new in-memory session repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: make(map[string]*Session)}
}

// Get retrieves a session by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

// FindByRefreshToken retrieves a session by its refresh token.
func (r *InMemoryRepository) FindByRefreshToken(_ context.Context, token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.RefreshToken() == token {
			return cloneSession(s), nil
		}
	}
	return nil, ErrSessionNotFound
}

// Create creates a new session, enforcing refresh token uniqueness.
func (r *InMemoryRepository) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.RefreshToken() == s.RefreshToken() {
			return database.ErrDuplicateKey
		}
	}
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

// Update updates an existing session.
func (r *InMemoryRepository) Update(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return ErrSessionNotFound
	}
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

// InvalidateAllForUser marks every session of a user as invalid.
func (r *InMemoryRepository) InvalidateAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.UserID() == userID {
			s.Attrs["isValid"] = false
			s.UpdatedAt = time.Now()
		}
	}
	return nil
}

// Delete deletes a session by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func cloneSession(s *Session) *Session {
	cpy := *s
	cpy.Attrs = make(map[string]any, len(s.Attrs))
	for k, v := range s.Attrs {
		cpy.Attrs[k] = v
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
