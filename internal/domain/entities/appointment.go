package entities

import (
	"time"
)

// Appointment represents a booked slot between a client and a provider.
// At most one non-canceled appointment exists per (ProviderID, ScheduledAt).
type Appointment struct {
	ID          string     `json:"id" db:"id"`
	ClientID    string     `json:"client_id" db:"client_id"`
	ProviderID  string     `json:"provider_id" db:"provider_id"`
	ScheduledAt time.Time  `json:"scheduled_at" db:"scheduled_at"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty" db:"canceled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Canceled reports whether the appointment has been canceled.
func (a *Appointment) Canceled() bool {
	return a.CanceledAt != nil
}

// CancelDeadline returns the last instant at which cancellation is still
// allowed, given the configured cancellation window. The deadline itself
// is exclusive: at exactly CancelDeadline it is already too late.
func (a *Appointment) CancelDeadline(window time.Duration) time.Time {
	return a.ScheduledAt.Add(-window)
}

// Cancelable reports whether the appointment can still be canceled at now.
func (a *Appointment) Cancelable(now time.Time, window time.Duration) bool {
	return !a.Canceled() && now.Before(a.CancelDeadline(window))
}

// StartOfHour truncates t to the start of its wall-clock hour. This is
// the canonical slot key: two instants differing only in sub-hour
// granularity collapse to the same slot.
func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
