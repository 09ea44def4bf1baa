package services

import (
	"context"
	"time"

	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/repositories"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// AvailabilityService decides whether a (provider, slot) pair is
// bookable. It is a pure decision: no writes happen here.
type AvailabilityService struct {
	users        repositories.UserRepository
	appointments repositories.AppointmentRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	users repositories.UserRepository,
	appointments repositories.AppointmentRepository,
) *AvailabilityService {
	return &AvailabilityService{
		users:        users,
		appointments: appointments,
	}
}

// CheckSlot validates a booking request and returns the canonical slot
// instant (requested truncated to the start of its hour) to persist as
// the schedule time. Collisions are decided on the truncated value, so
// two requests differing only in sub-hour granularity contend for the
// same slot.
func (s *AvailabilityService) CheckSlot(ctx context.Context, clientID, providerID string, requested, now time.Time) (time.Time, error) {
	provider, err := s.users.GetByID(ctx, providerID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return time.Time{}, apperrors.NewNotAProviderError("appointments can only be created with providers")
		}
		return time.Time{}, err
	}
	if !provider.IsProvider {
		return time.Time{}, apperrors.NewNotAProviderError("appointments can only be created with providers")
	}

	if clientID == providerID {
		return time.Time{}, apperrors.NewSelfBookingError("providers cannot book appointments with themselves")
	}

	// Date validity is decided before availability: a past instant is
	// always PAST_DATE, never SLOT_TAKEN.
	slot := entities.StartOfHour(requested)
	if slot.Before(now) {
		return time.Time{}, apperrors.NewPastDateError("appointment dates must be in the future")
	}

	existing, err := s.appointments.FindBooked(ctx, providerID, slot)
	if err != nil {
		return time.Time{}, err
	}
	if existing != nil {
		return time.Time{}, apperrors.NewSlotTakenError("appointment date not available")
	}

	return slot, nil
}
