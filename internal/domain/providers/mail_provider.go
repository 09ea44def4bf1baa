package providers

import (
	"context"

	"github.com/slotbook/backend/internal/domain/entities"
)

// MailProvider defines the interface for the mail transport collaborator.
type MailProvider interface {
	// Send delivers a plain-text email.
	Send(ctx context.Context, to, subject, body string) error
}

// TaskQueue defines the interface for deferring work to a background
// worker. Cancellation mail is enqueued here so booking latency is not
// coupled to mail-transport latency.
type TaskQueue interface {
	// EnqueueCancellationEmail submits a cancellation notice for
	// asynchronous delivery.
	EnqueueCancellationEmail(ctx context.Context, email *entities.CancellationEmail) error

	// Close releases the queue connection.
	Close() error
}
