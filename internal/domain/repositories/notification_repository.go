package repositories

import (
	"context"

	"github.com/slotbook/backend/internal/domain/entities"
)

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	// Create stores a new notification
	Create(ctx context.Context, notification *entities.Notification) error

	// ListByRecipient retrieves notifications for a recipient ordered
	// by creation time descending, capped at limit.
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entities.Notification, error)

	// MarkRead flips the read flag to true and returns the updated
	// record. Marking an already-read notification is a no-op success.
	MarkRead(ctx context.Context, id string) (*entities.Notification, error)
}
