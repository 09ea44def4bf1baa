package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/internal/domain/repositories"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// CancellationMailSubject is the fixed subject of cancellation notices.
const CancellationMailSubject = "Appointment canceled"

// Human-readable slot formats used in notification and mail bodies.
const (
	slotDateLayout = "January 2"
	slotTimeLayout = "3:04 pm"
)

// NotificationService records in-app notifications for providers and
// queues cancellation emails.
type NotificationService struct {
	repo      repositories.NotificationRepository
	users     repositories.UserRepository
	queue     providers.TaskQueue
	listLimit int
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	repo repositories.NotificationRepository,
	users repositories.UserRepository,
	queue providers.TaskQueue,
	listLimit int,
) *NotificationService {
	return &NotificationService{
		repo:      repo,
		users:     users,
		queue:     queue,
		listLimit: listLimit,
	}
}

// NotifyNewBooking records an unread in-app notification for the
// provider about a freshly booked slot.
func (s *NotificationService) NotifyNewBooking(ctx context.Context, providerID, clientName string, scheduledAt time.Time) (*entities.Notification, error) {
	now := time.Now()
	notification := &entities.Notification{
		ID:          uuid.New().String(),
		RecipientID: providerID,
		Content: fmt.Sprintf(
			"New appointment with %s on %s at %s",
			clientName,
			scheduledAt.Format(slotDateLayout),
			scheduledAt.Format(slotTimeLayout),
		),
		Read:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// EnqueueCancellationMail submits the provider's cancellation notice to
// the task queue. Delivery is asynchronous; failures never unwind the
// cancellation.
func (s *NotificationService) EnqueueCancellationMail(ctx context.Context, appointment *entities.Appointment, provider, client *entities.User) error {
	return s.queue.EnqueueCancellationEmail(ctx, &entities.CancellationEmail{
		AppointmentID: appointment.ID,
		ProviderName:  provider.Name,
		ProviderEmail: provider.Email,
		ClientName:    client.Name,
		ScheduledAt:   appointment.ScheduledAt,
	})
}

// ListForProvider returns the requester's latest notifications, newest
// first, capped at the configured limit. Only providers have
// notifications to list.
func (s *NotificationService) ListForProvider(ctx context.Context, requesterID string) ([]*entities.Notification, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsProvider {
		return nil, apperrors.NewNotAProviderError("only providers can load notifications")
	}

	return s.repo.ListByRecipient(ctx, requesterID, s.listLimit)
}

// MarkRead marks a notification as read. Idempotent: an already-read
// notification is returned unchanged.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*entities.Notification, error) {
	return s.repo.MarkRead(ctx, id)
}

// RenderCancellationMail renders the plain-text body of a cancellation
// notice for the mail worker.
func RenderCancellationMail(email *entities.CancellationEmail) string {
	return fmt.Sprintf(
		"Hello %s,\n\nThe appointment with %s on %s at %s has been canceled.\n\nSlotbook Team",
		email.ProviderName,
		email.ClientName,
		email.ScheduledAt.Format(slotDateLayout),
		email.ScheduledAt.Format(slotTimeLayout),
	)
}

// MailRecipient formats the provider's address with a display name.
func MailRecipient(email *entities.CancellationEmail) string {
	return fmt.Sprintf("%s <%s>", email.ProviderName, email.ProviderEmail)
}
