package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	CORSOrigin     string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	EventRetention time.Duration
	PruneSchedule  string // standard 5-field cron expression
}

// ErrMissingJWTSecret is returned when JWT_SECRET is not set. There is
// deliberately no built-in fallback secret; the process must not start
// without one.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "3001")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "6h"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, err
	}

	retention, err := time.ParseDuration(getEnv("EVENT_RETENTION", "720h"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./taskdesk.db"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		JWTSecret:      secret,
		TokenTTL:       ttl,
		BcryptCost:     cost,
		EventRetention: retention,
		PruneSchedule:  getEnv("PRUNE_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
