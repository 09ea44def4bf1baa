package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/slotbook/backend/internal/adapters/database"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/infrastructure/clients/postgres"
	"github.com/slotbook/backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	userRepo := database.NewUserAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				appointments,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(h)
	}

	now := time.Now()

	// 1. Seed providers
	providers := []entities.User{
		{ID: uuid.New().String(), Name: "Jane Barber", Email: "jane@slotbook.local", PasswordHash: hash("secret123"), IsProvider: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Mike Stylist", Email: "mike@slotbook.local", PasswordHash: hash("secret123"), IsProvider: true, CreatedAt: now, UpdatedAt: now},
	}

	for i := range providers {
		if err := userRepo.Create(ctx, &providers[i]); err != nil {
			log.Printf("Failed to create provider %s: %v", providers[i].Name, err)
		}
	}

	// 2. Seed clients
	clients := []entities.User{
		{ID: uuid.New().String(), Name: "John Doe", Email: "john@slotbook.local", PasswordHash: hash("secret123"), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Ada Smith", Email: "ada@slotbook.local", PasswordHash: hash("secret123"), CreatedAt: now, UpdatedAt: now},
	}

	for i := range clients {
		if err := userRepo.Create(ctx, &clients[i]); err != nil {
			log.Printf("Failed to create client %s: %v", clients[i].Name, err)
		}
	}

	// 3. Seed a few upcoming appointments on whole-hour slots
	nextMorning := entities.StartOfHour(now.Add(24 * time.Hour))
	appointments := []entities.Appointment{
		{ID: uuid.New().String(), ClientID: clients[0].ID, ProviderID: providers[0].ID, ScheduledAt: nextMorning, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), ClientID: clients[1].ID, ProviderID: providers[0].ID, ScheduledAt: nextMorning.Add(time.Hour), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), ClientID: clients[0].ID, ProviderID: providers[1].ID, ScheduledAt: nextMorning.Add(2 * time.Hour), CreatedAt: now, UpdatedAt: now},
	}

	for i := range appointments {
		if err := appointmentRepo.Create(ctx, &appointments[i]); err != nil {
			log.Printf("Failed to create appointment: %v", err)
		}
	}

	log.Printf("Seeded %d providers, %d clients, %d appointments", len(providers), len(clients), len(appointments))
}
