package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquagrid/aquagrid/internal/auth"
)

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret-key-for-testing-only")

	token, err := issuer.Issue("usr_test123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_test123", claims.UserID)
	assert.Equal(t, "usr_test123", claims.Subject)
}

func TestTokenIssuer_ExpiryWindow(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret-key-for-testing-only")

	token, err := issuer.Issue("usr_test123")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, expiresIn, 9*time.Hour)
	assert.LessOrEqual(t, expiresIn, 10*time.Hour)
}

func TestTokenIssuer_EmptySigningKey(t *testing.T) {
	issuer := auth.NewTokenIssuer("")

	token, err := issuer.Issue("usr_test123")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenIssuer_InvalidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret-key-for-testing-only")

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenIssuer_WrongKey(t *testing.T) {
	issuer := auth.NewTokenIssuer("key-one")
	other := auth.NewTokenIssuer("key-two")

	token, err := issuer.Issue("usr_test123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}
