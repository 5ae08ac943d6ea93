package config

import (
	"fmt"
	"os"
)

// Config holds everything the process reads from the environment.
// Load is called once at startup; missing required values abort boot.
type Config struct {
	DatabaseURL string
	Port        string

	// Seed credentials for the default owner account created on first boot.
	OwnerUsername string
	OwnerPassword string
	OwnerEmail    string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getenv("PORT", "3000"),
		OwnerUsername: getenv("OWNER_USERNAME", "owner"),
		OwnerPassword: getenv("OWNER_PASSWORD", "owner123"),
		OwnerEmail:    getenv("OWNER_EMAIL", "owner@example.com"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (env: DATABASE_URL)")
	}
	// pkg/jwt reads JWT_SECRET from the environment itself; only the
	// presence check lives here so a missing secret aborts boot, not login.
	if os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("jwt_secret is required (env: JWT_SECRET)")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
