package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Rules are the fixed booking limits. They are deliberately constants, not
// environment-parsed: changing them is a deploy, not a config tweak.
type Rules struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	MaxAdvance  time.Duration
	CancelGrace time.Duration
}

func DefaultRules() Rules {
	return Rules{
		MinDuration: time.Hour,
		MaxDuration: 24 * time.Hour,
		MaxAdvance:  30 * 24 * time.Hour,
		CancelGrace: time.Hour,
	}
}

type Config struct {
	DatabaseURL    string
	Port           string
	JWTSecret      string
	AllowedOrigins string
	Rules          Rules
}

// Load reads the environment (after a best-effort .env load) and fails on
// the values the server cannot run without.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getEnvOrDefault("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: getEnvOrDefault("ALLOWED_ORIGINS", "*"),
		Rules:          DefaultRules(),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("Environment variable %s is not set, using default value", key)
	return defaultValue
}
