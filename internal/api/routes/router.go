package routes

import (
	"net/http"

	"github.com/slotbook/backend/internal/api/handlers"
	"github.com/slotbook/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler  *handlers.AppointmentHandler
	notificationHandler *handlers.NotificationHandler
	userHandler         *handlers.UserHandler
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	notificationHandler *handlers.NotificationHandler,
	userHandler *handlers.UserHandler,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		userHandler:         userHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// User endpoints; registration is the only route reachable without
	// an identity header.
	r.mux.HandleFunc("POST /api/users", r.userHandler.Register)
	r.mux.HandleFunc("PUT /api/users", middleware.RequireUser(r.userHandler.Update))

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", middleware.RequireUser(r.appointmentHandler.List))
	r.mux.HandleFunc("POST /api/appointments", middleware.RequireUser(r.appointmentHandler.Create))
	r.mux.HandleFunc("DELETE /api/appointments/{id}", middleware.RequireUser(r.appointmentHandler.Cancel))

	// Notification endpoints
	r.mux.HandleFunc("GET /api/notifications", middleware.RequireUser(r.notificationHandler.List))
	r.mux.HandleFunc("PUT /api/notifications/{id}", middleware.RequireUser(r.notificationHandler.MarkRead))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(handler)

	return handler
}
