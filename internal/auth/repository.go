package auth

import "context"

// Repository defines the interface for session persistence.
type Repository interface {
	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// FindByRefreshToken retrieves a session by its refresh token.
	FindByRefreshToken(ctx context.Context, token string) (*Session, error)

	// Create creates a new session. A duplicate refresh token surfaces as
	// database.ErrDuplicateKey.
	Create(ctx context.Context, s *Session) error

	// Update updates an existing session.
	Update(ctx context.Context, s *Session) error

	// InvalidateAllForUser marks every session of a user as invalid.
	InvalidateAllForUser(ctx context.Context, userID string) error

	// Delete deletes a session by ID.
	Delete(ctx context.Context, id string) error
}
