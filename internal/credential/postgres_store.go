package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the key in a shared PostgreSQL settings table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL credential store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the settings table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS settings (
			scope      TEXT NOT NULL,
			name       TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (scope, name)
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

// Load returns the saved key.
func (s *PostgresStore) Load(ctx context.Context) (string, error) {
	query := `
		SELECT value
		FROM settings
		WHERE scope = $1 AND name = $2
	`

	var token string
	if err := s.pool.QueryRow(ctx, query, Scope, KeyName).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	return token, nil
}

// Save replaces the saved key.
func (s *PostgresStore) Save(ctx context.Context, token string) error {
	query := `
		INSERT INTO settings (scope, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, Scope, KeyName, token); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Delete removes the saved key.
func (s *PostgresStore) Delete(ctx context.Context) error {
	query := `DELETE FROM settings WHERE scope = $1 AND name = $2`
	if _, err := s.pool.Exec(ctx, query, Scope, KeyName); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
