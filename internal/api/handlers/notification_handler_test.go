package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slotbook/backend/internal/api/handlers"
	"github.com/slotbook/backend/internal/api/middleware"
	"github.com/slotbook/backend/internal/domain/entities"
	apperrors "github.com/slotbook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubNotificationService struct {
	listed      []*entities.Notification
	listErr     error
	marked      *entities.Notification
	markErr     error
	lastRequest string
}

func (s *stubNotificationService) ListForProvider(ctx context.Context, requesterID string) ([]*entities.Notification, error) {
	s.lastRequest = requesterID
	return s.listed, s.listErr
}

func (s *stubNotificationService) MarkRead(ctx context.Context, id string) (*entities.Notification, error) {
	s.lastRequest = id
	return s.marked, s.markErr
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("returns the provider's notifications", func(t *testing.T) {
		service := &stubNotificationService{
			listed: []*entities.Notification{{ID: "n1"}, {ID: "n2"}},
		}
		handler := handlers.NewNotificationHandler(service)

		req := httptest.NewRequest("GET", "/api/notifications", nil)
		req.Header.Set(middleware.UserIDHeader, "provider-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.List)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "provider-1", service.lastRequest)

		var response map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.JSONEq(t, "2", string(response["count"]))
	})

	t.Run("rejects non-providers", func(t *testing.T) {
		service := &stubNotificationService{
			listErr: apperrors.NewNotAProviderError("only providers can load notifications"),
		}
		handler := handlers.NewNotificationHandler(service)

		req := httptest.NewRequest("GET", "/api/notifications", nil)
		req.Header.Set(middleware.UserIDHeader, "client-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.List)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("returns the updated notification", func(t *testing.T) {
		service := &stubNotificationService{
			marked: &entities.Notification{ID: "n1", Read: true},
		}
		handler := handlers.NewNotificationHandler(service)

		req := httptest.NewRequest("PUT", "/api/notifications/n1", nil)
		req.SetPathValue("id", "n1")
		req.Header.Set(middleware.UserIDHeader, "provider-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.MarkRead)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response entities.Notification
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.True(t, response.Read)
	})

	t.Run("maps missing notifications to 404", func(t *testing.T) {
		service := &stubNotificationService{
			markErr: apperrors.NewNotFoundError("notification not found"),
		}
		handler := handlers.NewNotificationHandler(service)

		req := httptest.NewRequest("PUT", "/api/notifications/missing", nil)
		req.SetPathValue("id", "missing")
		req.Header.Set(middleware.UserIDHeader, "provider-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.MarkRead)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
