package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailProvider struct {
	mock.Mock
}

func (m *MockMailProvider) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func cancellationTask(t *testing.T) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(&entities.CancellationEmail{
		AppointmentID: "appt-1",
		ProviderName:  "Jane Barber",
		ProviderEmail: "jane@example.com",
		ClientName:    "John Doe",
		ScheduledAt:   time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return asynq.NewTask("email:cancellation", payload)
}

func TestCancellationEmailHandler(t *testing.T) {
	t.Run("renders and sends the notice to the provider", func(t *testing.T) {
		mailer := new(MockMailProvider)
		handler := worker.NewCancellationEmailHandler(mailer)

		mailer.On("Send",
			mock.Anything,
			"Jane Barber <jane@example.com>",
			"Appointment canceled",
			mock.MatchedBy(func(body string) bool {
				return body == "Hello Jane Barber,\n\n"+
					"The appointment with John Doe on June 10 at 2:00 pm has been canceled.\n\n"+
					"Slotbook Team"
			}),
		).Return(nil)

		err := handler(context.Background(), cancellationTask(t))

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("returns transport errors so the queue retries", func(t *testing.T) {
		mailer := new(MockMailProvider)
		handler := worker.NewCancellationEmailHandler(mailer)

		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused"))

		err := handler(context.Background(), cancellationTask(t))

		assert.Error(t, err)
	})

	t.Run("drops malformed payloads without retrying", func(t *testing.T) {
		mailer := new(MockMailProvider)
		handler := worker.NewCancellationEmailHandler(mailer)

		err := handler(context.Background(), asynq.NewTask("email:cancellation", []byte("not-json")))

		assert.NoError(t, err)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
