package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/pkg/logging"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort             string
	StorageDriver        string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	SeedCatalog          bool
	LogLevel             string
	LogFormat            string
	LogFile              string
	OpenAPIValidation    bool
	PriceRefreshSchedule string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after the .env file
// has been loaded. Unset keys take their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	seed, err := strconv.ParseBool(env("SEED_CATALOG", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("SEED_CATALOG: %w", err)
	}
	validation, err := strconv.ParseBool(env("OPENAPI_VALIDATION", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("OPENAPI_VALIDATION: %w", err)
	}

	cfg := Config{
		HTTPPort:             env("HTTP_PORT", "8080"),
		StorageDriver:        strings.ToLower(env("STORAGE_DRIVER", StorageMemory)),
		DBHost:               env("DB_HOST", "localhost"),
		DBPort:               env("DB_PORT", "5432"),
		DBUser:               env("DB_USER", ""),
		DBPassword:           env("DB_PASSWORD", ""),
		DBName:               env("DB_NAME", ""),
		DBSslMode:            env("DB_SSLMODE", "disable"),
		SeedCatalog:          seed,
		LogLevel:             env("LOG_LEVEL", "info"),
		LogFormat:            env("LOG_FORMAT", "text"),
		LogFile:              env("LOG_FILE", ""),
		OpenAPIValidation:    validation,
		PriceRefreshSchedule: env("PRICE_REFRESH_SCHEDULE", ""),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver)
	}
	return cfg, nil
}

// Postgres returns the database settings.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// Logging returns the logger settings.
func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		File:   c.LogFile,
	}
}
