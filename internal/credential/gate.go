package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// ValidationLocation is the location probed to validate a key.
const ValidationLocation = "beijing"

// ErrInvalidCredential is returned by Confirm when the vendor accepts the
// request but returns no data for the probe location.
var ErrInvalidCredential = errors.New("api key rejected")

// Client is the part of the vendor client the gate needs.
type Client interface {
	SetAPIKey(key string)
	HasAPIKey() bool
	CurrentWeather(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
}

// Gate holds the API key and decides whether feature screens are reachable.
type Gate struct {
	client Client
	store  Store
	logger zerolog.Logger

	// op serializes Confirm, Restore and Forget.
	op       sync.Mutex
	token    string
	unlocked atomic.Bool

	subMu       sync.Mutex
	subscribers []func()
}

// NewGate creates a locked gate.
func NewGate(client Client, store Store, logger zerolog.Logger) *Gate {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Gate{
		client: client,
		store:  store,
		logger: logger,
	}
}

// SetCredential stores the trimmed token in the client. It does not validate.
func (g *Gate) SetCredential(token string) {
	g.op.Lock()
	defer g.op.Unlock()
	g.setCredential(token)
}

func (g *Gate) setCredential(token string) {
	g.token = strings.TrimSpace(token)
	g.client.SetAPIKey(g.token)
}

// Validate probes the vendor with the current key. It reports true only when
// the response carries a non-empty results array. Request failures are
// returned as errors, never as false.
func (g *Gate) Validate(ctx context.Context) (bool, error) {
	if !g.client.HasAPIKey() {
		return false, seniverse.ErrNotConfigured
	}

	doc, err := g.client.CurrentWeather(ctx, ValidationLocation,
		seniverse.WithLanguage(seniverse.DefaultLanguage),
		seniverse.WithUnit(seniverse.DefaultUnit),
	)
	if err != nil {
		return false, err
	}

	results, ok := doc.Lookup("results")
	if !ok {
		return false, nil
	}
	arr, ok := results.([]any)
	return ok && len(arr) > 0, nil
}

// Confirm sets and validates token. On success the gate unlocks and the token
// is saved when persist is true, or any saved token is removed otherwise.
// On failure the previous credential and lock state are kept.
func (g *Gate) Confirm(ctx context.Context, token string, persist bool) error {
	return g.unlock(ctx, token, func(token string) {
		g.persist(ctx, token, persist)
	})
}

// Activate sets and validates token like Confirm but leaves storage alone.
// It is used for a key preset in the environment.
func (g *Gate) Activate(ctx context.Context, token string) error {
	return g.unlock(ctx, token, nil)
}

func (g *Gate) unlock(ctx context.Context, token string, onSuccess func(token string)) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("api key is empty: %w", seniverse.ErrInvalidInput)
	}

	g.op.Lock()
	previous := g.token
	g.setCredential(token)

	valid, err := g.Validate(ctx)
	if err != nil || !valid {
		g.setCredential(previous)
		g.op.Unlock()
		if err != nil {
			return fmt.Errorf("validating api key: %w", err)
		}
		return ErrInvalidCredential
	}

	g.unlocked.Store(true)
	if onSuccess != nil {
		onSuccess(token)
	}
	g.op.Unlock()

	g.logger.Info().Msg("api key confirmed")
	g.notify()
	return nil
}

func (g *Gate) persist(ctx context.Context, token string, save bool) {
	if save {
		if err := g.store.Save(ctx, token); err != nil {
			g.logger.Warn().Err(err).Msg("failed to save api key")
		}
		return
	}
	if err := g.store.Delete(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("failed to remove saved api key")
	}
}

// Restore loads a saved token and validates it silently. Failures are logged
// and leave the gate locked. It reports whether the gate is unlocked.
func (g *Gate) Restore(ctx context.Context) bool {
	g.op.Lock()

	token, err := g.store.Load(ctx)
	if err != nil {
		g.op.Unlock()
		if !errors.Is(err, ErrNoCredential) {
			g.logger.Warn().Err(err).Msg("failed to load saved api key")
		}
		return false
	}

	g.setCredential(token)
	valid, err := g.Validate(ctx)
	if err != nil || !valid {
		g.setCredential("")
		g.op.Unlock()
		if err != nil {
			g.logger.Warn().Err(err).Msg("saved api key could not be validated")
		} else {
			g.logger.Warn().Msg("saved api key rejected")
		}
		return false
	}

	g.unlocked.Store(true)
	g.op.Unlock()

	g.logger.Info().Msg("restored saved api key")
	g.notify()
	return true
}

// Unlocked reports whether a validated key is in use.
func (g *Gate) Unlocked() bool {
	return g.unlocked.Load()
}

// Forget clears the key, locks the gate and deletes the saved key.
func (g *Gate) Forget(ctx context.Context) error {
	g.op.Lock()
	defer g.op.Unlock()

	g.setCredential("")
	g.unlocked.Store(false)

	if err := g.store.Delete(ctx); err != nil {
		return fmt.Errorf("deleting saved api key: %w", err)
	}
	return nil
}

// OnUnlock registers fn to run after every successful unlock.
func (g *Gate) OnUnlock(fn func()) {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	g.subscribers = append(g.subscribers, fn)
}

func (g *Gate) notify() {
	g.subMu.Lock()
	subscribers := append([]func(){}, g.subscribers...)
	g.subMu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
