package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/slotbook/backend/internal/api/middleware"
	"github.com/slotbook/backend/internal/application/services"
	"github.com/slotbook/backend/internal/domain/entities"
)

// UserService defines the interface for user operations
type UserService interface {
	Register(ctx context.Context, input services.RegisterInput) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID string, input services.UpdateProfileInput) (*entities.User, error)
}

// UserHandler handles user requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsProvider bool   `json:"is_provider"`
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.Register(r.Context(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		IsProvider: req.IsProvider,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	Password    string `json:"password"`
}

// Update handles PUT /api/users
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID := middleware.UserID(r.Context())

	user, err := h.service.UpdateProfile(r.Context(), userID, services.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		Password:    req.Password,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
