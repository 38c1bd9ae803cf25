package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file if one is present. Real environment variables still
// take precedence, so a missing file is fine in containers and tests.
func Load() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process environment")
		return
	}
	slog.Info("loaded environment from .env")
}

// GetEnvDefault returns the value of the environment variable, or fallback
// when it is unset or empty.
func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
