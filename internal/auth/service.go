package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aquagrid/aquagrid/internal/user"
)

// CredentialSource resolves a login email to stored credential state.
// Implemented by the user service.
type CredentialSource interface {
	LookupCredentials(ctx context.Context, email string) (*user.Credentials, error)
}

// Service provides login, refresh and logout over stored sessions.
type Service struct {
	credentials CredentialSource
	sessions    Repository
	issuer      *TokenIssuer
}

// ServiceConfig holds configuration for the auth service.
type ServiceConfig struct {
	Credentials CredentialSource
	Sessions    Repository
	Issuer      *TokenIssuer
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		credentials: cfg.Credentials,
		sessions:    cfg.Sessions,
		issuer:      cfg.Issuer,
	}
}

// LoginInput carries a login attempt plus the client metadata stored on
// the session.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is an issued token pair. AccessToken is empty when no
// signing key is configured.
type LoginResult struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	Session      *Session
}

// Login verifies an email and password and opens a new session. Unknown
// emails and wrong passwords both surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	creds, err := s.credentials.LookupCredentials(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(creds.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}
	if creds.Blocked {
		return nil, ErrAccountBlocked
	}

	return s.openSession(ctx, creds.UserID, input.UserAgent, input.IPAddress)
}

// Refresh rotates a session: the presented refresh token is invalidated
// and a new session with a fresh token pair is opened.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	session, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if !session.IsValid() {
		return nil, ErrSessionInvalid
	}
	if time.Now().After(session.ExpiresAt()) {
		return nil, ErrSessionExpired
	}

	session.Attrs["isValid"] = false
	session.UpdatedAt = time.Now()
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	userAgent, _ := session.Attrs["userAgent"].(string)
	ipAddress, _ := session.Attrs["ipAddress"].(string)
	return s.openSession(ctx, session.UserID(), userAgent, ipAddress)
}

// Logout invalidates the session holding the given refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	session.Attrs["isValid"] = false
	session.UpdatedAt = time.Now()
	return s.sessions.Update(ctx, session)
}

// LogoutAll invalidates every session of a user.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	return s.sessions.InvalidateAllForUser(ctx, userID)
}

// ValidateToken parses and validates an access token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.issuer.Validate(tokenString)
}

func (s *Service) openSession(ctx context.Context, userID, userAgent, ipAddress string) (*LoginResult, error) {
	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	attrs := map[string]any{
		"userId":       userID,
		"refreshToken": refreshToken,
		"expiresAt":    time.Now().Add(SessionExpiry),
	}
	if userAgent != "" {
		attrs["userAgent"] = userAgent
	}
	if ipAddress != "" {
		attrs["ipAddress"] = ipAddress
	}

	normalized, err := SessionRules.Validate(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:        "ses_" + uuid.New().String()[:22],
		Attrs:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.Issue(userID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Session:      session,
	}, nil
}
