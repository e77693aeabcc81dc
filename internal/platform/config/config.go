package config

import (
	"fmt"
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr string
	// NexusTablePath points at a YAML threshold table; empty uses the built-in table.
	NexusTablePath  string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            getEnv("TAXGUARD_ADDR", ":8080"),
		NexusTablePath:  os.Getenv("TAXGUARD_NEXUS_TABLE"),
		LogLevel:        getEnv("TAXGUARD_LOG_LEVEL", "info"),
		LogFormat:       getEnv("TAXGUARD_LOG_FORMAT", "json"),
		ShutdownTimeout: 10 * time.Second,
	}

	if raw := os.Getenv("TAXGUARD_SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("TAXGUARD_SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Server{}, fmt.Errorf("TAXGUARD_SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Server{}, fmt.Errorf("TAXGUARD_LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
