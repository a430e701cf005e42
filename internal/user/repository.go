package user

import "context"

// Repository defines the interface for user account persistence. It covers
// the user record plus the contact, address, password and preferences
// records the user references.
type Repository interface {
	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*User, error)

	// List retrieves a page of users with the total count.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// FindByContact retrieves the user referencing the given contact.
	FindByContact(ctx context.Context, contactID string) (*User, error)

	// Create creates a new user.
	Create(ctx context.Context, u *User) error

	// Update updates an existing user.
	Update(ctx context.Context, u *User) error

	// Delete deletes a user. Referenced records are left untouched.
	Delete(ctx context.Context, id string) error

	// GetContact retrieves a contact by ID.
	GetContact(ctx context.Context, id string) (*Contact, error)

	// FindContactByEmail retrieves a contact by its unique email.
	FindContactByEmail(ctx context.Context, email string) (*Contact, error)

	// CreateContact creates a new contact. A duplicate email surfaces as
	// database.ErrDuplicateKey.
	CreateContact(ctx context.Context, c *Contact) error

	// UpdateContact updates an existing contact.
	UpdateContact(ctx context.Context, c *Contact) error

	// GetAddress retrieves an address by ID.
	GetAddress(ctx context.Context, id string) (*Address, error)

	// CreateAddress creates a new address.
	CreateAddress(ctx context.Context, a *Address) error

	// UpdateAddress updates an existing address.
	UpdateAddress(ctx context.Context, a *Address) error

	// GetPassword retrieves a password record by ID.
	GetPassword(ctx context.Context, id string) (*Password, error)

	// CreatePassword creates a new password record.
	CreatePassword(ctx context.Context, p *Password) error

	// UpdatePassword updates an existing password record.
	UpdatePassword(ctx context.Context, p *Password) error

	// GetPreferences retrieves a preferences record by ID.
	GetPreferences(ctx context.Context, id string) (*Preferences, error)

	// GetPreferencesByUser retrieves the preferences record for a user.
	GetPreferencesByUser(ctx context.Context, userID string) (*Preferences, error)

	// CreatePreferences creates a new preferences record. A second record
	// for the same user surfaces as database.ErrDuplicateKey.
	CreatePreferences(ctx context.Context, p *Preferences) error

	// UpdatePreferences updates an existing preferences record.
	UpdatePreferences(ctx context.Context, p *Preferences) error

	// DeletePreferences deletes a preferences record by ID.
	DeletePreferences(ctx context.Context, id string) error
}
