package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/slotbook/backend/internal/domain/entities"
)

// TypeCancellationEmail is the task type for provider cancellation notices.
const TypeCancellationEmail = "email:cancellation"

// MailQueueName is the asynq queue cancellation mail is routed to.
const MailQueueName = "mail"

// mailMaxRetry bounds delivery attempts; retry is queue policy, the
// triggering operation never waits on it.
const mailMaxRetry = 3

// NewCancellationEmailTask builds the asynq task for a cancellation notice.
func NewCancellationEmailTask(email *entities.CancellationEmail) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(email)
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{
		asynq.Queue(MailQueueName),
		asynq.MaxRetry(mailMaxRetry),
	}
	return asynq.NewTask(TypeCancellationEmail, payload), opts, nil
}
