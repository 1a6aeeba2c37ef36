// Package credential holds the API key gate and the stores that persist the
// key between sessions.
package credential

import (
	"context"
	"errors"
)

const (
	// Scope namespaces persisted settings for this application.
	Scope = "SkyTracker/SkyTrackerApp"

	// KeyName is the settings key under which the API key is stored.
	KeyName = "api_key"
)

// ErrNoCredential is returned by Store.Load when nothing is saved.
var ErrNoCredential = errors.New("no saved credential")

// Store persists at most one API key.
type Store interface {
	// Load returns the saved key, or ErrNoCredential.
	Load(ctx context.Context) (string, error)

	// Save replaces the saved key.
	Save(ctx context.Context, token string) error

	// Delete removes the saved key. Deleting when nothing is saved is not an error.
	Delete(ctx context.Context) error
}
