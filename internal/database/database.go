// Package database manages the PostgreSQL pool used by the shared
// credential store.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds database connection configuration.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectTimeout bounds how long Connect keeps retrying the initial ping.
	ConnectTimeout time.Duration
}

// ConfigFromEnv creates a Config from DB_* environment variables.
// Unparseable numbers fall back to their defaults.
func ConfigFromEnv() Config {
	return Config{
		Host:            getEnvOrDefault("DB_HOST", "localhost"),
		Port:            atoiOrDefault(os.Getenv("DB_PORT"), 5432),
		User:            getEnvOrDefault("DB_USER", "skytracker"),
		Password:        getEnvOrDefault("DB_PASSWORD", "localdev"),
		Database:        getEnvOrDefault("DB_NAME", "skytracker"),
		SSLMode:         getEnvOrDefault("DB_SSL_MODE", "disable"),
		MaxOpenConns:    atoiOrDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 4),
		MaxIdleConns:    atoiOrDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 1),
		ConnMaxLifetime: durationOrDefault(os.Getenv("DB_CONN_MAX_LIFETIME"), 5*time.Minute),
		ConnectTimeout:  durationOrDefault(os.Getenv("DB_CONNECT_TIMEOUT"), 30*time.Second),
	}
}

// ConnectionString returns the PostgreSQL connection URL. User and password
// are escaped.
func (c Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Connect creates a connection pool and verifies it with a ping. The ping is
// retried with exponential backoff until ConnectTimeout elapses, so the
// service can start alongside a database that is still booting.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.MaxOpenConns < 1 || cfg.MaxIdleConns < 0 || cfg.MaxIdleConns > cfg.MaxOpenConns {
		return nil, fmt.Errorf("invalid pool size: max open %d, max idle %d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns) //nolint:gosec // validated above
	poolConfig.MinConns = int32(cfg.MaxIdleConns) //nolint:gosec // validated above
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	ping := func() error { return pool.Ping(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(connectBackOff(cfg.ConnectTimeout), ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// connectBackOff pings once when timeout is not positive.
func connectBackOff(timeout time.Duration) backoff.BackOff {
	if timeout <= 0 {
		return &backoff.StopBackOff{}
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = timeout
	return bo
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoiOrDefault(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return n
}

func durationOrDefault(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}
