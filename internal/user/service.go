package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides validated user account operations.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the documents for a new account. Password is the
// plaintext; it is hashed before anything is stored.
type RegisterInput struct {
	Contact  map[string]any
	Address  map[string]any
	Password string
}

// Register creates the contact, address and password records for a new
// account and the user record referencing them. A contact email already
// in use surfaces as database.ErrDuplicateKey.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	contactAttrs, err := ContactRules.Validate(input.Contact)
	if err != nil {
		return nil, err
	}

	address := input.Address
	if address == nil {
		address = map[string]any{}
	}
	addressAttrs, err := AddressRules.Validate(address)
	if err != nil {
		return nil, err
	}

	passwordAttrs, err := PasswordRules.Validate(map[string]any{"password": input.Password})
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	passwordAttrs["password"] = hash

	now := time.Now()
	contactAttrs["last_update"] = now
	passwordAttrs["last_update"] = now

	contact := &Contact{ID: "cnt_" + uuid.New().String()[:22], Attrs: contactAttrs, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	addr := &Address{ID: "adr_" + uuid.New().String()[:22], Attrs: addressAttrs, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}

	password := &Password{ID: "pwd_" + uuid.New().String()[:22], Attrs: passwordAttrs, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreatePassword(ctx, password); err != nil {
		return nil, err
	}

	userAttrs, err := Rules.Validate(map[string]any{
		"contact":       contact.ID,
		"address":       addr.ID,
		"password":      password.ID,
		"creation_date": now,
	})
	if err != nil {
		return nil, err
	}

	u := &User{ID: "usr_" + uuid.New().String()[:22], Attrs: userAttrs, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of users.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// Update validates a partial update and merges it into an existing user.
func (s *Service) Update(ctx context.Context, id string, attrs map[string]any) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := Rules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		u.Attrs[k] = v
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete deletes a user by ID. The contact, address and password records
// it references are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetContact retrieves a contact by ID.
func (s *Service) GetContact(ctx context.Context, id string) (*Contact, error) {
	return s.repo.GetContact(ctx, id)
}

// UpdateContact validates a partial update and merges it into an
// existing contact.
func (s *Service) UpdateContact(ctx context.Context, id string, attrs map[string]any) (*Contact, error) {
	c, err := s.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := ContactRules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		c.Attrs[k] = v
	}
	c.Attrs["last_update"] = time.Now()
	c.UpdatedAt = time.Now()

	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetAddress retrieves an address by ID.
func (s *Service) GetAddress(ctx context.Context, id string) (*Address, error) {
	return s.repo.GetAddress(ctx, id)
}

// UpdateAddress validates a partial update and merges it into an
// existing address.
func (s *Service) UpdateAddress(ctx context.Context, id string, attrs map[string]any) (*Address, error) {
	a, err := s.repo.GetAddress(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := AddressRules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		a.Attrs[k] = v
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.UpdateAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetPassword retrieves a password record by ID.
func (s *Service) GetPassword(ctx context.Context, id string) (*Password, error) {
	return s.repo.GetPassword(ctx, id)
}

// SavePassword saves a password record. A value identical to the stored
// hash is a re-save of unmodified data and is written back as is; any
// other value is treated as a new plaintext and hashed.
func (s *Service) SavePassword(ctx context.Context, id, value string) (*Password, error) {
	p, err := s.repo.GetPassword(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := PasswordRules.Validate(map[string]any{"password": value}); err != nil {
		return nil, err
	}

	if value != p.Hash() {
		hash, err := HashPassword(value)
		if err != nil {
			return nil, err
		}
		p.Attrs["password"] = hash
		p.Attrs["last_update"] = time.Now()
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.UpdatePassword(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// LookupCredentials resolves a login email to the account's credential
// state. Returns ErrUserNotFound when the email is unknown or the account
// is incomplete.
func (s *Service) LookupCredentials(ctx context.Context, email string) (*Credentials, error) {
	contact, err := s.repo.FindContactByEmail(ctx, email)
	if err != nil {
		if err == ErrContactNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u, err := s.repo.FindByContact(ctx, contact.ID)
	if err != nil {
		return nil, err
	}

	passwordID, _ := u.Attrs["password"].(string)
	p, err := s.repo.GetPassword(ctx, passwordID)
	if err != nil {
		if err == ErrPasswordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	blocked, _ := u.Attrs["blocked"].(bool)
	return &Credentials{
		UserID:       u.ID,
		PasswordHash: p.Hash(),
		Blocked:      blocked,
	}, nil
}

// GetPreferences retrieves the preferences record for a user.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	return s.repo.GetPreferencesByUser(ctx, userID)
}

// CreatePreferences validates and persists a preferences record for a
// user. A second record for the same user surfaces as
// database.ErrDuplicateKey.
func (s *Service) CreatePreferences(ctx context.Context, userID string, attrs map[string]any) (*Preferences, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["userId"] = userID

	normalized, err := PreferencesRules.Validate(merged)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Preferences{
		ID:        "prf_" + uuid.New().String()[:22],
		UserID:    userID,
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreatePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePreferences validates a partial update and merges it into a
// user's preferences record. The merge is per top-level key: a supplied
// nested object (dashboard, the notification blocks) is normalized as a
// whole and replaces the stored object, so unsupplied children of that
// object return to their defaults.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, attrs map[string]any) (*Preferences, error) {
	p, err := s.repo.GetPreferencesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch, err := PreferencesRules.ValidatePartial(attrs)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		p.Attrs[k] = v
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.UpdatePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePreferences deletes a user's preferences record.
func (s *Service) DeletePreferences(ctx context.Context, userID string) error {
	p, err := s.repo.GetPreferencesByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.DeletePreferences(ctx, p.ID)
}
