// Package user provides user account management: the user record and its
// referenced contact, address and password records, plus per-user
// preferences. Relationships are reference-by-identifier only; deleting a
// user does not cascade to the records it references.
package user

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrContactNotFound     = errors.New("user contact not found")
	ErrAddressNotFound     = errors.New("user address not found")
	ErrPasswordNotFound    = errors.New("user password not found")
	ErrPreferencesNotFound = errors.New("user preferences not found")
)

// User is a stored user account referencing its contact, address and
// password records by identifier.
type User struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (u *User) Document() map[string]any {
	return document(u.ID, u.Attrs, u.CreatedAt, u.UpdatedAt)
}

// Contact is a stored user contact record. Email is unique across
// contacts, enforced by a database index.
type Contact struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Email returns the contact's email address.
func (c *Contact) Email() string {
	e, _ := c.Attrs["email"].(string)
	return e
}

// Document returns the full JSON document for API responses.
func (c *Contact) Document() map[string]any {
	return document(c.ID, c.Attrs, c.CreatedAt, c.UpdatedAt)
}

// Address is a stored user address record.
type Address struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (a *Address) Document() map[string]any {
	return document(a.ID, a.Attrs, a.CreatedAt, a.UpdatedAt)
}

// Password is a stored password record. After a successful save the
// password attribute holds the bcrypt hash, never the plaintext.
type Password struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hash returns the stored password hash.
func (p *Password) Hash() string {
	h, _ := p.Attrs["password"].(string)
	return h
}

// Preferences is a stored per-user preferences record. One record per
// user, enforced by a unique index on the user reference.
type Preferences struct {
	ID        string
	UserID    string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the full JSON document for API responses.
func (p *Preferences) Document() map[string]any {
	return document(p.ID, p.Attrs, p.CreatedAt, p.UpdatedAt)
}

// Credentials is the subset of account state the auth service needs to
// verify a login attempt.
type Credentials struct {
	UserID       string
	PasswordHash string
	Blocked      bool
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of users plus the total record count.
type ListResult struct {
	Items []*User
	Total int
}

func document(id string, attrs map[string]any, createdAt, updatedAt time.Time) map[string]any {
	doc := make(map[string]any, len(attrs)+3)
	for k, v := range attrs {
		doc[k] = v
	}
	doc["id"] = id
	doc["createdAt"] = createdAt
	doc["updatedAt"] = updatedAt
	return doc
}
