// Package auth provides login sessions and access-token issuance.
package auth

import (
	"errors"
	"time"
)

// Service and repository errors.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrSessionInvalid     = errors.New("session is no longer valid")
	ErrSessionExpired     = errors.New("session has expired")
)

// Session is a stored refresh session. The refresh token inside is
// globally unique, enforced by a database index.
type Session struct {
	ID        string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserID returns the session's user reference.
func (s *Session) UserID() string {
	id, _ := s.Attrs["userId"].(string)
	return id
}

// RefreshToken returns the session's opaque refresh token.
func (s *Session) RefreshToken() string {
	t, _ := s.Attrs["refreshToken"].(string)
	return t
}

// IsValid reports whether the session is still usable.
func (s *Session) IsValid() bool {
	v, _ := s.Attrs["isValid"].(bool)
	return v
}

// ExpiresAt returns the session's expiry time.
func (s *Session) ExpiresAt() time.Time {
	switch t := s.Attrs["expiresAt"].(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Document returns the full JSON document for API responses. The refresh
// token itself is not included.
func (s *Session) Document() map[string]any {
	doc := make(map[string]any, len(s.Attrs)+3)
	for k, v := range s.Attrs {
		if k == "refreshToken" {
			continue
		}
		doc[k] = v
	}
	doc["id"] = s.ID
	doc["createdAt"] = s.CreatedAt
	doc["updatedAt"] = s.UpdatedAt
	return doc
}
