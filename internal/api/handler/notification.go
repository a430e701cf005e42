package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquagrid/aquagrid/internal/api/response"
	"github.com/aquagrid/aquagrid/internal/notification"
)

// NotificationHandler handles notification and subscriber endpoints.
type NotificationHandler struct {
	notifications *notification.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications handles GET /v1/notifications - list notifications with pagination.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.notifications.List(r.Context(), notification.ListOptions{Page: page, Limit: limit})
	if err != nil {
		respondError(w, r, err)
		return
	}

	docs := make([]map[string]any, 0, len(result.Items))
	for _, n := range result.Items {
		docs = append(docs, n.Document())
	}
	response.Paginated(w, r, docs, result.Total, page, limit)
}

// CreateNotification handles POST /v1/notifications - create a notification.
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	n, err := h.notifications.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/notifications/"+n.ID, n.Document())
}

// GetNotification handles GET /v1/notifications/{notificationId}.
func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.Get(r.Context(), chi.URLParam(r, "notificationId"))
	if err != nil {
		respondError(w, r, err, notification.ErrNotificationNotFound)
		return
	}
	response.OK(w, r, n.Document(), "")
}

// UpdateNotification handles PUT /v1/notifications/{notificationId}.
func (h *NotificationHandler) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	n, err := h.notifications.Update(r.Context(), chi.URLParam(r, "notificationId"), doc)
	if err != nil {
		respondError(w, r, err, notification.ErrNotificationNotFound)
		return
	}
	response.OK(w, r, n.Document(), "Notification updated")
}

// DeleteNotification handles DELETE /v1/notifications/{notificationId}.
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(r.Context(), chi.URLParam(r, "notificationId")); err != nil {
		respondError(w, r, err, notification.ErrNotificationNotFound)
		return
	}
	response.NoContent(w, r)
}

// ListSubscribers handles GET /v1/notifications/{notificationId}/subscribers.
func (h *NotificationHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	notificationID := chi.URLParam(r, "notificationId")

	result, err := h.notifications.ListSubscribers(r.Context(), notificationID,
		notification.ListOptions{Page: page, Limit: limit})
	if err != nil {
		respondError(w, r, err, notification.ErrNotificationNotFound)
		return
	}

	docs := make([]map[string]any, 0, len(result.Items))
	for _, s := range result.Items {
		docs = append(docs, s.Document())
	}
	response.Paginated(w, r, docs, result.Total, page, limit)
}

// Subscribe handles POST /v1/notifications/{notificationId}/subscribers.
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	notificationID := chi.URLParam(r, "notificationId")
	s, err := h.notifications.Subscribe(r.Context(), notificationID, doc)
	if err != nil {
		respondError(w, r, err, notification.ErrNotificationNotFound)
		return
	}
	location := "/v1/notifications/" + notificationID + "/subscribers/" + s.ID
	response.Created(w, r, location, s.Document())
}

// UpdateSubscriber handles PUT /v1/notifications/{notificationId}/subscribers/{subscriberId}.
func (h *NotificationHandler) UpdateSubscriber(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	s, err := h.notifications.UpdateSubscriber(r.Context(), chi.URLParam(r, "subscriberId"), doc)
	if err != nil {
		respondError(w, r, err, notification.ErrSubscriberNotFound)
		return
	}
	response.OK(w, r, s.Document(), "Subscriber updated")
}

// MarkSeen handles POST /v1/notifications/{notificationId}/subscribers/{subscriberId}/seen.
func (h *NotificationHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	s, err := h.notifications.MarkSeen(r.Context(), chi.URLParam(r, "subscriberId"))
	if err != nil {
		respondError(w, r, err, notification.ErrSubscriberNotFound)
		return
	}
	response.OK(w, r, s.Document(), "Notification marked as seen")
}

// Unsubscribe handles DELETE /v1/notifications/{notificationId}/subscribers/{subscriberId}.
func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Unsubscribe(r.Context(), chi.URLParam(r, "subscriberId")); err != nil {
		respondError(w, r, err, notification.ErrSubscriberNotFound)
		return
	}
	response.NoContent(w, r)
}
