package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/slotbook/backend/internal/api/handlers"
	"github.com/slotbook/backend/internal/api/middleware"
	"github.com/slotbook/backend/internal/application/services"
	"github.com/slotbook/backend/internal/domain/entities"
	apperrors "github.com/slotbook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubUserService struct {
	registered  *entities.User
	registerErr error
	updated     *entities.User
	updateErr   error
	lastInput   services.RegisterInput
	lastUserID  string
}

func (s *stubUserService) Register(ctx context.Context, input services.RegisterInput) (*entities.User, error) {
	s.lastInput = input
	return s.registered, s.registerErr
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, input services.UpdateProfileInput) (*entities.User, error) {
	s.lastUserID = userID
	return s.updated, s.updateErr
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("creates a user without requiring identity", func(t *testing.T) {
		service := &stubUserService{
			registered: &entities.User{ID: "user-1", Name: "John Doe", Email: "john@example.com"},
		}
		handler := handlers.NewUserHandler(service)

		body := `{"name":"John Doe","email":"john@example.com","password":"secret123","is_provider":true}`
		req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, service.lastInput.IsProvider)

		var response map[string]interface{}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "user-1", response["id"])
		assert.NotContains(t, response, "password_hash")
	})

	t.Run("maps duplicate email to 409", func(t *testing.T) {
		service := &stubUserService{
			registerErr: apperrors.NewConflictError("a user with this email already exists"),
		}
		handler := handlers.NewUserHandler(service)

		body := `{"name":"John Doe","email":"john@example.com","password":"secret123"}`
		req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		service := &stubUserService{}
		handler := handlers.NewUserHandler(service)

		req := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("updates the authenticated user's profile", func(t *testing.T) {
		service := &stubUserService{
			updated: &entities.User{ID: "user-1", Name: "Johnny"},
		}
		handler := handlers.NewUserHandler(service)

		body := `{"name":"Johnny"}`
		req := httptest.NewRequest("PUT", "/api/users", strings.NewReader(body))
		req.Header.Set(middleware.UserIDHeader, "user-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.Update)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", service.lastUserID)
	})

	t.Run("maps a wrong old password to 401", func(t *testing.T) {
		service := &stubUserService{
			updateErr: apperrors.NewUnauthorizedError("old password is incorrect"),
		}
		handler := handlers.NewUserHandler(service)

		body := `{"old_password":"wrong","password":"newsecret"}`
		req := httptest.NewRequest("PUT", "/api/users", strings.NewReader(body))
		req.Header.Set(middleware.UserIDHeader, "user-1")
		w := httptest.NewRecorder()

		middleware.RequireUser(handler.Update)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
