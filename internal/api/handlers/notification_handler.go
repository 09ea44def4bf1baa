package handlers

import (
	"context"
	"net/http"

	"github.com/slotbook/backend/internal/api/middleware"
	"github.com/slotbook/backend/internal/domain/entities"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	ListForProvider(ctx context.Context, requesterID string) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id string) (*entities.Notification, error)
}

// NotificationHandler handles notification requests
type NotificationHandler struct {
	service NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.UserID(r.Context())

	notifications, err := h.service.ListForProvider(r.Context(), requesterID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead handles PUT /api/notifications/{id}
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := r.PathValue("id")
	if notificationID == "" {
		respondWithError(w, http.StatusBadRequest, "notification ID is required")
		return
	}

	notification, err := h.service.MarkRead(r.Context(), notificationID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notification)
}
