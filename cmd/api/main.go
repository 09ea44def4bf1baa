package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/slotbook/backend/internal/adapters/cache"
	"github.com/slotbook/backend/internal/adapters/database"
	"github.com/slotbook/backend/internal/adapters/queue"
	"github.com/slotbook/backend/internal/api/handlers"
	"github.com/slotbook/backend/internal/api/routes"
	"github.com/slotbook/backend/internal/application/services"
	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/internal/domain/repositories"
	"github.com/slotbook/backend/internal/infrastructure/clients/mongo"
	"github.com/slotbook/backend/internal/infrastructure/clients/postgres"
	"github.com/slotbook/backend/internal/infrastructure/clients/redis"
	"github.com/slotbook/backend/internal/infrastructure/observability"
	"github.com/slotbook/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("slotbook-api", cfg.Env)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize MongoDB client (notification store)
	mongoClient, err := mongo.NewClient(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize MongoDB client")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Error closing MongoDB client")
		}
	}()
	log.Info().Msg("MongoDB client initialized successfully")

	// Initialize Redis client; the API works without caching
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, running without cache")
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize adapters
	baseUserAdapter := database.NewUserAdapter(pgClient)

	var userAdapter repositories.UserRepository
	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		userAdapter = database.NewCachedUserAdapter(baseUserAdapter, cacheProvider)
		log.Info().Msg("User adapter wrapped with caching layer")
	} else {
		userAdapter = baseUserAdapter
	}

	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(mongoClient)

	// Initialize the mail task queue; delivery happens in the worker binary
	taskQueue := queue.NewAsynqQueue(&cfg.Redis)
	defer func() {
		if err := taskQueue.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing task queue")
		}
	}()

	// Initialize services
	availabilityService := services.NewAvailabilityService(userAdapter, appointmentAdapter)
	notificationService := services.NewNotificationService(notificationAdapter, userAdapter, taskQueue, cfg.Booking.PageSize)
	appointmentService := services.NewAppointmentService(
		appointmentAdapter,
		userAdapter,
		availabilityService,
		notificationService,
		cfg.Booking.CancelWindow(),
		cfg.Booking.PageSize,
	)
	userService := services.NewUserService(userAdapter)

	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)

	// Set up router
	router := routes.NewRouter(appointmentHandler, notificationHandler, userHandler)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
