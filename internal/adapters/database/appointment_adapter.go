package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/repositories"
	"github.com/slotbook/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

var appointmentColumns = []any{
	"id", "client_id", "provider_id", "scheduled_at", "canceled_at",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface.
// Slot uniqueness relies on the partial unique index on
// (provider_id, scheduled_at) WHERE canceled_at IS NULL; the losing
// side of a concurrent insert surfaces as a slot-taken error.
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":           appointment.ID,
		"client_id":    appointment.ClientID,
		"provider_id":  appointment.ProviderID,
		"scheduled_at": appointment.ScheduledAt,
		"canceled_at":  appointment.CanceledAt,
		"created_at":   appointment.CreatedAt,
		"updated_at":   appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return apperrors.NewSlotTakenError("appointment date not available")
	}
	if err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := a.scanRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return appointment, nil
}

// FindBooked returns the non-canceled appointment occupying the slot, or
// nil when the slot is free.
func (a *AppointmentAdapter) FindBooked(ctx context.Context, providerID string, slot time.Time) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{
			"provider_id":  providerID,
			"scheduled_at": slot,
			"canceled_at":  nil,
		}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := a.scanRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check slot availability", err)
	}
	return appointment, nil
}

// Cancel marks the appointment canceled and returns the updated record
func (a *AppointmentAdapter) Cancel(ctx context.Context, id string, canceledAt time.Time) (*entities.Appointment, error) {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"canceled_at": canceledAt,
			"updated_at":  canceledAt,
		}).
		Where(goqu.Ex{"id": id}).
		Returning(appointmentColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cancel query", err)
	}

	appointment, err := a.scanRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to cancel appointment", err)
	}
	return appointment, nil
}

// ListByClient retrieves a client's non-canceled appointments ordered by
// schedule time ascending
func (a *AppointmentAdapter) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{
			"client_id":   clientID,
			"canceled_at": nil,
		}).
		Order(goqu.I("scheduled_at").Asc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := a.scanRow(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (a *AppointmentAdapter) scanRow(row scanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var canceledAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.ProviderID,
		&appointment.ScheduledAt,
		&canceledAt,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if canceledAt.Valid {
		appointment.CanceledAt = &canceledAt.Time
	}
	return appointment, nil
}
