package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquagrid/aquagrid/internal/auth"
	"github.com/aquagrid/aquagrid/internal/user"
)

func newAuthService(t *testing.T) (*auth.Service, *user.Service, *user.User) {
	t.Helper()

	users := user.NewService(user.NewInMemoryRepository())
	u, err := users.Register(context.Background(), user.RegisterInput{
		Contact: map[string]any{
			"email":     "login@example.com",
			"firstName": "Amira",
			"lastName":  "Ben Salah",
		},
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	// New accounts start blocked; unblock for login tests.
	_, err = users.Update(context.Background(), u.ID, map[string]any{"blocked": false})
	require.NoError(t, err)

	svc := auth.NewService(auth.ServiceConfig{
		Credentials: users,
		Sessions:    auth.NewInMemoryRepository(),
		Issuer:      auth.NewTokenIssuer("test-secret-key-for-testing-only"),
	})
	return svc, users, u
}

func TestService_Login(t *testing.T) {
	svc, _, u := newAuthService(t)

	result, err := svc.Login(context.Background(), auth.LoginInput{
		Email:     "login@example.com",
		Password:  "s3cret-pass",
		UserAgent: "aquagrid-app/1.0",
		IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)

	assert.Equal(t, u.ID, result.UserID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.Session.IsValid())

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginInput{
		Email:    "login@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Login_BlockedAccount(t *testing.T) {
	svc, users, u := newAuthService(t)

	_, err := users.Update(context.Background(), u.ID, map[string]any{"blocked": true})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginInput{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, auth.ErrAccountBlocked)
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, auth.LoginInput{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-out token is single use.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
}

func TestService_Logout(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, auth.LoginInput{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RefreshToken))

	_, err = svc.Refresh(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
}

func TestService_LogoutAll(t *testing.T) {
	svc, _, u := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, auth.LoginInput{Email: "login@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, auth.LoginInput{Email: "login@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, u.ID))

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
}
