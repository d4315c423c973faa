package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AuthConfig holds the service keys used to derive credential
// fingerprints and login tokens. The two keys must differ so that a
// stored fingerprint can never be replayed as a token.
type AuthConfig struct {
	PasswordHashKey string
	TokenKey        string
}

// Config holds all runtime configuration for the platform service.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Document store settings. An empty DatabaseURL puts the service
	// into degraded mode: it still serves requests, but every
	// store-backed operation reports the store as unavailable.
	DatabaseURL  string
	DatabaseName string

	// Optional infrastructure. Empty values disable the feature.
	RedisURL     string
	KafkaBrokers []string

	Auth AuthConfig
}

// LoadConfig reads configuration from the environment. A local .env
// file is loaded first when present so development setups work without
// exporting variables manually.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8000"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: getEnv("DATABASE_NAME", "elearning"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		Auth: AuthConfig{
			PasswordHashKey: getEnv("AUTH_PASSWORD_KEY", "elearning-password-v1"),
			TokenKey:        getEnv("AUTH_TOKEN_KEY", "elearning-token-v1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants that would otherwise surface
// as confusing failures deep inside the service.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Auth.PasswordHashKey == "" {
		return fmt.Errorf("AUTH_PASSWORD_KEY must not be empty")
	}
	if c.Auth.TokenKey == "" {
		return fmt.Errorf("AUTH_TOKEN_KEY must not be empty")
	}
	if c.Auth.PasswordHashKey == c.Auth.TokenKey {
		return fmt.Errorf("AUTH_PASSWORD_KEY and AUTH_TOKEN_KEY must differ")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
