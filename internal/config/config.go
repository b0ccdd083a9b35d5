package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             int
	JWTTTLHours      int
	LogLevel         string
	ProfileCacheSize int
}

// FromEnv builds the configuration from the environment. DATABASE_URL
// and JWT_SECRET are mandatory; there is no fallback signing secret.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             3000,
		JWTTTLHours:      72,
		LogLevel:         "info",
		ProfileCacheSize: 1024,
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if value := os.Getenv("PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("PORT must be a positive integer, got %q", value)
		}
		cfg.Port = port
	}
	if value := os.Getenv("JWT_TTL_HOURS"); value != "" {
		ttl, err := strconv.Atoi(value)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("JWT_TTL_HOURS must be a positive integer, got %q", value)
		}
		cfg.JWTTTLHours = ttl
	}
	if value := os.Getenv("PROFILE_CACHE_SIZE"); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("PROFILE_CACHE_SIZE must be a non-negative integer, got %q", value)
		}
		cfg.ProfileCacheSize = size
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	return cfg, nil
}
