package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	ExtractTimeout time.Duration
	MaxImageBytes  int
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory when there is one.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}

	return &Config{
		Port:           getInt("PORT", 8080),
		DBPath:         getEnv("DB_PATH", "./data/bills.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-5"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ExtractTimeout: getDuration("EXTRACT_TIMEOUT", 60*time.Second),
		MaxImageBytes:  getInt("MAX_IMAGE_BYTES", 10<<20),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}
