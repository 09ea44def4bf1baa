package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Booking  BookingConfig
	Env      string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// MongoConfig holds MongoDB configuration (notification store)
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// QueueDB is the logical database used by the mail task queue.
	QueueDB int
}

// SMTPConfig holds mail transport configuration
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// BookingConfig holds scheduling policy values
type BookingConfig struct {
	// CancelWindowHours is how long before the slot a client may still cancel.
	CancelWindowHours int
	// PageSize is the fixed page size for appointment and notification listings.
	PageSize int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "slotbook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "slotbook"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			QueueDB:  getEnvAsInt("REDIS_QUEUE_DB", 1),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnvAsInt("SMTP_PORT", 1025),
			From: getEnv("SMTP_FROM", "Slotbook Team <noreply@slotbook.local>"),
		},
		Booking: BookingConfig{
			CancelWindowHours: getEnvAsInt("BOOKING_CANCEL_WINDOW_HOURS", 2),
			PageSize:          getEnvAsInt("BOOKING_PAGE_SIZE", 10),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPAddr returns the SMTP host:port address
func (c *SMTPConfig) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CancelWindow returns the cancellation window as a duration
func (c *BookingConfig) CancelWindow() time.Duration {
	return time.Duration(c.CancelWindowHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
