package main

import (
	"os"
	"strconv"
)

// Config holds process configuration read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	DBMaxConns  int
	LogFile     string
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults suitable for local development.
func LoadConfig() Config {
	cfg := Config{
		DatabaseURL: "./kanban.db",
		Port:        "4000",
		DBMaxConns:  10,
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DBMaxConns = n
		}
	}
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg
}
