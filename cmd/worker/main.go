package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/slotbook/backend/internal/infrastructure/notifications"
	"github.com/slotbook/backend/internal/infrastructure/observability"
	"github.com/slotbook/backend/internal/worker"
	"github.com/slotbook/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("slotbook-worker", cfg.Env)

	mailer := notifications.NewSMTPSender(&cfg.SMTP)
	mailWorker := worker.NewMailWorker(&cfg.Redis, mailer)

	log.Info().Str("smtp", cfg.SMTP.SMTPAddr()).Msg("Mail worker starting")

	// Run blocks until SIGINT/SIGTERM and drains in-flight tasks
	if err := mailWorker.Run(); err != nil {
		log.Fatal().Err(err).Msg("Mail worker failed")
	}

	log.Info().Msg("Mail worker stopped")
}
