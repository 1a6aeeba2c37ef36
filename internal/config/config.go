// Package config loads SkyTracker settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/database"
)

// Credential store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the process configuration.
type Config struct {
	// Port is the local HTTP shell port.
	Port string

	// Env is the deployment environment name.
	Env string

	// LogLevel is the minimum zerolog level.
	LogLevel zerolog.Level

	// BaseURL is the Seniverse API base URL.
	BaseURL string

	// APIKey is an optional preset key, confirmed at startup like a saved one.
	APIKey string

	// HTTPTimeout bounds each vendor request.
	HTTPTimeout time.Duration

	// CredentialStore selects the store backend.
	CredentialStore string

	// CredentialPath is the SQLite settings file.
	CredentialPath string

	// Database is used when CredentialStore is postgres.
	Database database.Config

	// OTelEnabled turns on OTLP export.
	OTelEnabled bool

	// OTLPEndpoint is the collector gRPC address.
	OTLPEndpoint string
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (Config, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	timeout, err := time.ParseDuration(getEnvOrDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT: must be positive, got %s", timeout)
	}

	store := strings.ToLower(getEnvOrDefault("CREDENTIAL_STORE", StoreSQLite))
	switch store {
	case StoreSQLite, StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("CREDENTIAL_STORE: unknown store %q", store)
	}

	path := os.Getenv("CREDENTIAL_PATH")
	if path == "" {
		path = defaultCredentialPath()
	}

	otelEnabled, _ := strconv.ParseBool(getEnvOrDefault("OTEL_ENABLED", "false"))

	return Config{
		Port:            getEnvOrDefault("APP_PORT", "8080"),
		Env:             getEnvOrDefault("APP_ENV", "development"),
		LogLevel:        level,
		BaseURL:         os.Getenv("SENIVERSE_BASE_URL"),
		APIKey:          strings.TrimSpace(os.Getenv("SENIVERSE_API_KEY")),
		HTTPTimeout:     timeout,
		CredentialStore: store,
		CredentialPath:  path,
		Database:        database.ConfigFromEnv(),
		OTelEnabled:     otelEnabled,
		OTLPEndpoint:    getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}, nil
}

// defaultCredentialPath places the settings file in the user config dir,
// falling back to the working directory.
func defaultCredentialPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.db"
	}
	return filepath.Join(dir, "skytracker", "settings.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
