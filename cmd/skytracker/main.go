// Package main provides the entrypoint for the SkyTracker local API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/skytracker/skytracker/internal/api"
	"github.com/skytracker/skytracker/internal/api/middleware"
	"github.com/skytracker/skytracker/internal/app"
	"github.com/skytracker/skytracker/internal/config"
	"github.com/skytracker/skytracker/internal/credential"
	"github.com/skytracker/skytracker/internal/database"
	"github.com/skytracker/skytracker/internal/provider/resilience"
	"github.com/skytracker/skytracker/internal/seniverse"
	"github.com/skytracker/skytracker/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "skytracker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log = log.Level(cfg.LogLevel)

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting SkyTracker")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if tp.Enabled() {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize http metrics")
	}
	vendorMetrics, err := seniverse.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize vendor metrics")
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.CredentialStore).Msg("failed to open credential store")
	}
	defer closeStore()

	transport := resilience.DefaultClientConfig(seniverse.ProviderName)
	transport.Timeout = cfg.HTTPTimeout
	transport.CircuitBreaker.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().
			Str("provider", name).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("circuit breaker state changed")
	}

	registry := resilience.NewRegistry()
	client := seniverse.NewClient(seniverse.ClientConfig{
		BaseURL:    cfg.BaseURL,
		HTTPClient: resilience.NewClient(transport),
		Registry:   registry,
		Metrics:    vendorMetrics,
		Logger:     log.With().Str("component", "seniverse").Logger(),
	})

	shell := app.NewShell(app.ShellConfig{
		Client:   client,
		Store:    store,
		Registry: registry,
		Logger:   log,
	})
	if shell.Start(ctx, cfg.APIKey) {
		log.Info().Msg("api key restored, feature screens unlocked")
	} else {
		log.Info().Msg("no usable api key, submit one to POST /v1/credential")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:  log,
		Metrics: httpMetrics,
		Shell:   shell,
	})

	// The write timeout leaves room for one vendor call.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// openStore opens the configured credential store. The returned func
// releases it.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (credential.Store, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreMemory:
		log.Warn().Msg("credential store is in memory, a saved key is lost on exit")
		return credential.NewMemoryStore(), func() {}, nil

	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := credential.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.Database).
			Msg("credential store connected")
		return store, pool.Close, nil

	default:
		store, err := credential.OpenSQLiteStore(ctx, cfg.CredentialPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.CredentialPath).Msg("credential store opened")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close credential store")
			}
		}, nil
	}
}
