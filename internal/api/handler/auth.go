package handler

import (
	"errors"
	"net/http"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/auth"
)

// AuthHandler handles login, refresh and logout endpoints.
type AuthHandler struct {
	auth *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginRequest
	if err := decodeInto(w, r, &input); err != nil {
		return
	}

	result, err := h.auth.Login(r.Context(), auth.LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			response.Unauthorized(w, r, "invalid email or password")
		case errors.Is(err, auth.ErrAccountBlocked):
			response.Forbidden(w, r, "account is blocked")
		default:
			respondError(w, r, err)
		}
		return
	}

	response.OK(w, r, TokenResponse{
		UserID:       result.UserID,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Logged in")
}

// RefreshRequest is the payload for POST /v1/auth/refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /v1/auth/refresh - rotate a refresh session.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input RefreshRequest
	if err := decodeInto(w, r, &input); err != nil {
		return
	}

	result, err := h.auth.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrSessionNotFound),
			errors.Is(err, auth.ErrSessionInvalid),
			errors.Is(err, auth.ErrSessionExpired):
			response.Unauthorized(w, r, "invalid refresh token")
		default:
			respondError(w, r, err)
		}
		return
	}

	response.OK(w, r, TokenResponse{
		UserID:       result.UserID,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Token refreshed")
}

// Logout handles POST /v1/auth/logout - invalidate one session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var input RefreshRequest
	if err := decodeInto(w, r, &input); err != nil {
		return
	}

	if err := h.auth.Logout(r.Context(), input.RefreshToken); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		respondError(w, r, err)
		return
	}
	// Logging out an unknown token is a no-op.
	response.OK(w, r, nil, "Logged out")
}

// LogoutAll handles POST /v1/auth/logout-all - invalidate every session
// of the authenticated user.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	if err := h.auth.LogoutAll(r.Context(), userID); err != nil {
		respondError(w, r, err)
		return
	}
	response.OK(w, r, nil, "Logged out everywhere")
}
