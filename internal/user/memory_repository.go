package user

import (
	"context"
	"sort"
	"sync"

	"github.com/aquagrid/aquagrid/internal/database"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu          sync.RWMutex
	users       map[string]*User
	contacts    map[string]*Contact
	addresses   map[string]*Address
	passwords   map[string]*Password
	preferences map[string]*Preferences
}

// NewInMemoryRepository creates a new in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:       make(map[string]*User),
		contacts:    make(map[string]*Contact),
		addresses:   make(map[string]*Address),
		passwords:   make(map[string]*Password),
		preferences: make(map[string]*Preferences),
	}
}

// Get retrieves a user by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

// List retrieves a page of users with the total count.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, limit := normalizePage(opts)

	all := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
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

	return &ListResult{Items: all[start:end], Total: len(r.users)}, nil
}

// FindByContact retrieves the user referencing the given contact.
func (r *InMemoryRepository) FindByContact(_ context.Context, contactID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if ref, _ := u.Attrs["contact"].(string); ref == contactID {
			return cloneUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

// Create creates a new user.
func (r *InMemoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = cloneUser(u)
	return nil
}

// Update updates an existing user.
func (r *InMemoryRepository) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

// Delete deletes a user.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// GetContact retrieves a contact by ID.
func (r *InMemoryRepository) GetContact(_ context.Context, id string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	return cloneContact(c), nil
}

// FindContactByEmail retrieves a contact by its unique email.
func (r *InMemoryRepository) FindContactByEmail(_ context.Context, email string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.contacts {
		if c.Email() == email {
			return cloneContact(c), nil
		}
	}
	return nil, ErrContactNotFound
}

// CreateContact creates a new contact, enforcing email uniqueness.
func (r *InMemoryRepository) CreateContact(_ context.Context, c *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.contacts {
		if existing.Email() == c.Email() {
			return database.ErrDuplicateKey
		}
	}
	r.contacts[c.ID] = cloneContact(c)
	return nil
}

// UpdateContact updates an existing contact.
func (r *InMemoryRepository) UpdateContact(_ context.Context, c *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[c.ID]; !ok {
		return ErrContactNotFound
	}
	for id, existing := range r.contacts {
		if id != c.ID && existing.Email() == c.Email() {
			return database.ErrDuplicateKey
		}
	}
	r.contacts[c.ID] = cloneContact(c)
	return nil
}

// GetAddress retrieves an address by ID.
func (r *InMemoryRepository) GetAddress(_ context.Context, id string) (*Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.addresses[id]
	if !ok {
		return nil, ErrAddressNotFound
	}
	return cloneAddress(a), nil
}

// CreateAddress creates a new address.
func (r *InMemoryRepository) CreateAddress(_ context.Context, a *Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.addresses[a.ID] = cloneAddress(a)
	return nil
}

// UpdateAddress updates an existing address.
func (r *InMemoryRepository) UpdateAddress(_ context.Context, a *Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[a.ID]; !ok {
		return ErrAddressNotFound
	}
	r.addresses[a.ID] = cloneAddress(a)
	return nil
}

// GetPassword retrieves a password record by ID.
func (r *InMemoryRepository) GetPassword(_ context.Context, id string) (*Password, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.passwords[id]
	if !ok {
		return nil, ErrPasswordNotFound
	}
	return clonePassword(p), nil
}

// CreatePassword creates a new password record.
func (r *InMemoryRepository) CreatePassword(_ context.Context, p *Password) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.passwords[p.ID] = clonePassword(p)
	return nil
}

// UpdatePassword updates an existing password record.
func (r *InMemoryRepository) UpdatePassword(_ context.Context, p *Password) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.passwords[p.ID]; !ok {
		return ErrPasswordNotFound
	}
	r.passwords[p.ID] = clonePassword(p)
	return nil
}

// GetPreferences retrieves a preferences record by ID.
func (r *InMemoryRepository) GetPreferences(_ context.Context, id string) (*Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.preferences[id]
	if !ok {
		return nil, ErrPreferencesNotFound
	}
	return clonePreferences(p), nil
}

// GetPreferencesByUser retrieves the preferences record for a user.
func (r *InMemoryRepository) GetPreferencesByUser(_ context.Context, userID string) (*Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.preferences {
		if p.UserID == userID {
			return clonePreferences(p), nil
		}
	}
	return nil, ErrPreferencesNotFound
}

// CreatePreferences creates a new preferences record, enforcing one
// record per user.
func (r *InMemoryRepository) CreatePreferences(_ context.Context, p *Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.preferences {
		if existing.UserID == p.UserID {
			return database.ErrDuplicateKey
		}
	}
	r.preferences[p.ID] = clonePreferences(p)
	return nil
}

// UpdatePreferences updates an existing preferences record.
func (r *InMemoryRepository) UpdatePreferences(_ context.Context, p *Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.preferences[p.ID]; !ok {
		return ErrPreferencesNotFound
	}
	r.preferences[p.ID] = clonePreferences(p)
	return nil
}

// DeletePreferences deletes a preferences record by ID.
func (r *InMemoryRepository) DeletePreferences(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.preferences, id)
	return nil
}

func cloneUser(u *User) *User {
	cpy := *u
	cpy.Attrs = cloneAttrs(u.Attrs)
	return &cpy
}

func cloneContact(c *Contact) *Contact {
	cpy := *c
	cpy.Attrs = cloneAttrs(c.Attrs)
	return &cpy
}

func cloneAddress(a *Address) *Address {
	cpy := *a
	cpy.Attrs = cloneAttrs(a.Attrs)
	return &cpy
}

func clonePassword(p *Password) *Password {
	cpy := *p
	cpy.Attrs = cloneAttrs(p.Attrs)
	return &cpy
}

func clonePreferences(p *Preferences) *Preferences {
	cpy := *p
	cpy.Attrs = cloneAttrs(p.Attrs)
	return &cpy
}

func cloneAttrs(attrs map[string]any) map[string]any {
	cpy := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cpy[k] = v
	}
	return cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
