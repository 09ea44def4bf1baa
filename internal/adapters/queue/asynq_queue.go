package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/pkg/config"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// AsynqQueue implements the TaskQueue interface on a Redis-backed asynq
// client.
type AsynqQueue struct {
	client *asynq.Client
}

// NewAsynqQueue creates a new asynq-backed task queue
func NewAsynqQueue(cfg *config.RedisConfig) providers.TaskQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.QueueDB,
	})
	return &AsynqQueue{client: client}
}

// EnqueueCancellationEmail submits a cancellation notice for asynchronous delivery
func (q *AsynqQueue) EnqueueCancellationEmail(ctx context.Context, email *entities.CancellationEmail) error {
	task, opts, err := NewCancellationEmailTask(email)
	if err != nil {
		return apperrors.NewInternalError("failed to build cancellation email task", err)
	}

	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return apperrors.NewExternalError("failed to enqueue cancellation email", err)
	}
	return nil
}

// Close releases the queue connection
func (q *AsynqQueue) Close() error {
	return q.client.Close()
}
