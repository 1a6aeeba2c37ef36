package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS settings (
		scope      TEXT NOT NULL,
		name       TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, name)
	)
`

// SQLiteStore keeps the key in a per-user SQLite settings file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the settings database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	// a single writer avoids "database is locked" on the settings file
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping settings db: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the saved key.
func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE scope = ? AND name = ?`,
		Scope, KeyName,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	return token, nil
}

// Save replaces the saved key.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (scope, name, value) VALUES (?, ?, ?)
		ON CONFLICT (scope, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, Scope, KeyName, token)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Delete removes the saved key.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM settings WHERE scope = ? AND name = ?`,
		Scope, KeyName,
	)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// Close closes the settings database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func sqliteDSN(path string) (string, error) {
	if path == ":memory:" {
		return "file::memory:", nil
	}

	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return "", fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		path = "file:" + path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_journal_mode=WAL", nil
}
