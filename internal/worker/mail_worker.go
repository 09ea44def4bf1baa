package worker

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/slotbook/backend/internal/adapters/queue"
	"github.com/slotbook/backend/internal/application/services"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/pkg/config"
)

const mailConcurrency = 10

// MailWorker consumes the mail queue and delivers cancellation notices
// over the configured transport. Delivery failures are retried by the
// queue up to the per-task retry limit.
type MailWorker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewMailWorker creates a new mail worker
func NewMailWorker(cfg *config.RedisConfig, mailer providers.MailProvider) *MailWorker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Password,
			DB:       cfg.QueueDB,
		},
		asynq.Config{
			Concurrency: mailConcurrency,
			Queues: map[string]int{
				queue.MailQueueName: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeCancellationEmail, NewCancellationEmailHandler(mailer))

	return &MailWorker{server: server, mux: mux}
}

// Run starts the worker and blocks until SIGINT/SIGTERM, draining
// in-flight tasks before returning.
func (w *MailWorker) Run() error {
	return w.server.Run(w.mux)
}

// NewCancellationEmailHandler returns the task handler that renders and
// sends a single cancellation notice. A malformed payload is dropped
// rather than retried; a transport failure is returned so the queue
// retries it.
func NewCancellationEmailHandler(mailer providers.MailProvider) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var email entities.CancellationEmail
		if err := json.Unmarshal(task.Payload(), &email); err != nil {
			log.Error().Err(err).Msg("Dropping cancellation email task with malformed payload")
			return nil
		}

		logger := log.With().
			Str("appointment_id", email.AppointmentID).
			Str("provider_email", email.ProviderEmail).
			Logger()

		err := mailer.Send(
			ctx,
			services.MailRecipient(&email),
			services.CancellationMailSubject,
			services.RenderCancellationMail(&email),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to send cancellation email")
			return err
		}

		logger.Info().Msg("Cancellation email sent")
		return nil
	}
}
