package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the sync core
type Config struct {
	// Database
	DatabaseURL string

	// Generative AI
	GeminiAPIKey   string
	GeminiEndpoint string // Optional: override for local test doubles

	// Environment
	Env string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", ""), // Empty = public Google API
		Env:            getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
