package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/user"
)

// UserHandler handles user account and preferences endpoints.
type UserHandler struct {
	users *user.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest is the payload for POST /v1/users/register.
type RegisterRequest struct {
	Contact  map[string]any `json:"contact"`
	Address  map[string]any `json:"address"`
	Password string         `json:"password"`
}

// Register handles POST /v1/users/register - create a new account.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterRequest
	if err := decodeInto(w, r, &input); err != nil {
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterInput{
		Contact:  input.Contact,
		Address:  input.Address,
		Password: input.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/users/"+u.ID, u.Document())
}

// ListUsers handles GET /v1/users - list users with pagination.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.users.List(r.Context(), user.ListOptions{Page: page, Limit: limit})
	if err != nil {
		respondError(w, r, err)
		return
	}

	docs := make([]map[string]any, 0, len(result.Items))
	for _, u := range result.Items {
		docs = append(docs, u.Document())
	}
	response.Paginated(w, r, docs, result.Total, page, limit)
}

// GetUser handles GET /v1/users/{userId}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}
	response.OK(w, r, u.Document(), "")
}

// UpdateUser handles PUT /v1/users/{userId}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	u, err := h.users.Update(r.Context(), chi.URLParam(r, "userId"), doc)
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}
	response.OK(w, r, u.Document(), "User updated")
}

// DeleteUser handles DELETE /v1/users/{userId}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}
	response.NoContent(w, r)
}

// GetContact handles GET /v1/users/{userId}/contact - fetch the contact
// record referenced by a user.
func (h *UserHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}

	contactID, _ := u.Attrs["contact"].(string)
	c, err := h.users.GetContact(r.Context(), contactID)
	if err != nil {
		respondError(w, r, err, user.ErrContactNotFound)
		return
	}
	response.OK(w, r, c.Document(), "")
}

// UpdateContact handles PUT /v1/users/{userId}/contact.
func (h *UserHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}

	contactID, _ := u.Attrs["contact"].(string)
	c, err := h.users.UpdateContact(r.Context(), contactID, doc)
	if err != nil {
		respondError(w, r, err, user.ErrContactNotFound)
		return
	}
	response.OK(w, r, c.Document(), "Contact updated")
}

// GetAddress handles GET /v1/users/{userId}/address.
func (h *UserHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}

	addressID, _ := u.Attrs["address"].(string)
	a, err := h.users.GetAddress(r.Context(), addressID)
	if err != nil {
		respondError(w, r, err, user.ErrAddressNotFound)
		return
	}
	response.OK(w, r, a.Document(), "")
}

// UpdateAddress handles PUT /v1/users/{userId}/address.
func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}

	addressID, _ := u.Attrs["address"].(string)
	a, err := h.users.UpdateAddress(r.Context(), addressID, doc)
	if err != nil {
		respondError(w, r, err, user.ErrAddressNotFound)
		return
	}
	response.OK(w, r, a.Document(), "Address updated")
}

// ChangePasswordRequest is the payload for PUT /v1/users/{userId}/password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword handles PUT /v1/users/{userId}/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input ChangePasswordRequest
	if err := decodeInto(w, r, &input); err != nil {
		return
	}

	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}

	passwordID, _ := u.Attrs["password"].(string)
	if _, err := h.users.SavePassword(r.Context(), passwordID, input.Password); err != nil {
		respondError(w, r, err, user.ErrPasswordNotFound)
		return
	}
	response.OK(w, r, nil, "Password updated")
}

// GetPreferences handles GET /v1/users/{userId}/preferences.
func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := h.users.GetPreferences(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err, user.ErrPreferencesNotFound)
		return
	}
	response.OK(w, r, p.Document(), "")
}

// CreatePreferences handles POST /v1/users/{userId}/preferences.
func (h *UserHandler) CreatePreferences(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userId")
	p, err := h.users.CreatePreferences(r.Context(), userID, doc)
	if err != nil {
		respondError(w, r, err, user.ErrUserNotFound)
		return
	}
	response.Created(w, r, "/v1/users/"+userID+"/preferences", p.Document())
}

// UpdatePreferences handles PUT /v1/users/{userId}/preferences.
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.users.UpdatePreferences(r.Context(), chi.URLParam(r, "userId"), doc)
	if err != nil {
		respondError(w, r, err, user.ErrPreferencesNotFound)
		return
	}
	response.OK(w, r, p.Document(), "Preferences updated")
}

// DeletePreferences handles DELETE /v1/users/{userId}/preferences.
func (h *UserHandler) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeletePreferences(r.Context(), chi.URLParam(r, "userId")); err != nil {
		respondError(w, r, err, user.ErrPreferencesNotFound)
		return
	}
	response.NoContent(w, r)
}
