package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL     string        // Required: base URL of the Eventable API
	DatabaseFile   string        // Optional: path to the local cache database (default: ./eventable.db)
	SessionKeyFile string        // Optional: path to the session sealing key (default: ./session.key, created on first use)
	Env            string        // Environment (dev, prod) (default: prod)
	LogLevel       string        // Log level (debug, info, warn, error) (default: info)
	LogFormat      string        // Log format (json, text) (default: text)
	PollInterval   time.Duration // Chat poll interval (default: 5s)
	HTTPTimeout    time.Duration // Per-request timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:     getEnvOrDefault("EVENTABLE_API_URL", "http://localhost:8080/api"),
		DatabaseFile:   getEnvOrDefault("EVENTABLE_DATABASE_FILE", "eventable.db"),
		SessionKeyFile: getEnvOrDefault("EVENTABLE_SESSION_KEY_FILE", "session.key"),
		Env:            getEnvOrDefault("ENV", "prod"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		PollInterval:   getEnvDurationOrDefault("CHAT_POLL_INTERVAL", 5*time.Second),
		HTTPTimeout:    getEnvDurationOrDefault("HTTP_TIMEOUT", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
