package repositories

import (
	"context"
	"time"

	"github.com/slotbook/backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create persists a new appointment. A concurrent insert for the
	// same live (provider, slot) pair fails with a slot-taken error.
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// FindBooked returns the non-canceled appointment occupying the
	// given (provider, slot) pair, or nil when the slot is free.
	FindBooked(ctx context.Context, providerID string, slot time.Time) (*entities.Appointment, error)

	// Cancel marks the appointment canceled at the given instant and
	// returns the updated record.
	Cancel(ctx context.Context, id string, canceledAt time.Time) (*entities.Appointment, error)

	// ListByClient retrieves a client's non-canceled appointments
	// ordered by schedule time ascending.
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entities.Appointment, error)
}
