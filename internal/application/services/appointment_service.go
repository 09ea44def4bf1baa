package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/repositories"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// AppointmentService manages the appointment lifecycle: creation,
// cancellation and listing, together with the notification side effects
// they trigger.
type AppointmentService struct {
	repo          repositories.AppointmentRepository
	users         repositories.UserRepository
	availability  *AvailabilityService
	notifications *NotificationService
	cancelWindow  time.Duration
	pageSize      int
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	repo repositories.AppointmentRepository,
	users repositories.UserRepository,
	availability *AvailabilityService,
	notifications *NotificationService,
	cancelWindow time.Duration,
	pageSize int,
) *AppointmentService {
	return &AppointmentService{
		repo:          repo,
		users:         users,
		availability:  availability,
		notifications: notifications,
		cancelWindow:  cancelWindow,
		pageSize:      pageSize,
	}
}

// Create books the requested slot for the client. Availability
// rejections propagate unchanged; nothing is persisted on rejection.
// The losing side of a concurrent insert for the same slot surfaces the
// storage conflict as SLOT_TAKEN.
func (s *AppointmentService) Create(ctx context.Context, clientID, providerID string, requested time.Time) (*entities.Appointment, error) {
	now := time.Now()

	slot, err := s.availability.CheckSlot(ctx, clientID, providerID, requested, now)
	if err != nil {
		return nil, err
	}

	client, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	appointment := &entities.Appointment{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		ProviderID:  providerID,
		ScheduledAt: slot,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	// Best-effort: the booking stands even if the in-app notification
	// cannot be recorded.
	if _, err := s.notifications.NotifyNewBooking(ctx, providerID, client.Name, slot); err != nil {
		log.Warn().Err(err).
			Str("appointment_id", appointment.ID).
			Str("provider_id", providerID).
			Msg("failed to record booking notification")
	}

	return appointment, nil
}

// Cancel cancels the appointment on behalf of the client who created
// it. The cancellation deadline is computed from the fetched record's
// own schedule time and the configured window; at exactly the deadline
// it is already too late.
func (s *AppointmentService) Cancel(ctx context.Context, requesterID, appointmentID string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.ClientID != requesterID {
		return nil, apperrors.NewNotOwnerError("you can only cancel your own appointments")
	}

	if appointment.Canceled() {
		return nil, apperrors.NewAlreadyCanceledError("this appointment has already been canceled")
	}

	now := time.Now()
	if !appointment.Cancelable(now, s.cancelWindow) {
		return nil, apperrors.NewTooLateToCancelError("the cancellation deadline for this appointment has passed")
	}

	updated, err := s.repo.Cancel(ctx, appointmentID, now)
	if err != nil {
		return nil, err
	}

	// The cancellation is the durable fact; mail is best-effort and
	// never unwinds it.
	s.enqueueCancellationMail(ctx, updated)

	return updated, nil
}

func (s *AppointmentService) enqueueCancellationMail(ctx context.Context, appointment *entities.Appointment) {
	provider, err := s.users.GetByID(ctx, appointment.ProviderID)
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).
			Msg("failed to load provider for cancellation mail")
		return
	}
	client, err := s.users.GetByID(ctx, appointment.ClientID)
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).
			Msg("failed to load client for cancellation mail")
		return
	}

	if err := s.notifications.EnqueueCancellationMail(ctx, appointment, provider, client); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).
			Msg("failed to enqueue cancellation mail")
	}
}

// ListByClient returns a page of the client's upcoming (non-canceled)
// appointments ordered by schedule time ascending.
func (s *AppointmentService) ListByClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListByClient(ctx, clientID, s.pageSize, (page-1)*s.pageSize)
}
