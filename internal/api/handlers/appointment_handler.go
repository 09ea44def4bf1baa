package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/slotbook/backend/internal/api/middleware"
	"github.com/slotbook/backend/internal/domain/entities"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	Create(ctx context.Context, clientID, providerID string, requested time.Time) (*entities.Appointment, error)
	Cancel(ctx context.Context, requesterID, appointmentID string) (*entities.Appointment, error)
	ListByClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

type createAppointmentRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.ProviderID == "" {
		respondWithError(w, http.StatusBadRequest, "provider_id is required")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date format (use RFC3339)")
		return
	}

	clientID := middleware.UserID(r.Context())

	appointment, err := h.service.Create(r.Context(), clientID, req.ProviderID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// Cancel handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	requesterID := middleware.UserID(r.Context())

	appointment, err := h.service.Cancel(r.Context(), requesterID, appointmentID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = parsed
	}

	clientID := middleware.UserID(r.Context())

	appointments, err := h.service.ListByClient(r.Context(), clientID, page)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation,
		apperrors.ErrorTypePastDate,
		apperrors.ErrorTypeSlotTaken,
		apperrors.ErrorTypeSelfBooking,
		apperrors.ErrorTypeTooLateToCancel:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeNotAProvider,
		apperrors.ErrorTypeNotOwner,
		apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeConflict,
		apperrors.ErrorTypeAlreadyCanceled:
		respondWithError(w, http.StatusConflict, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
