// Package app is the composition root: it owns the vendor client, the
// credential gate and the feature controllers built after each unlock.
package app

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/credential"
	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/provider/resilience"
	"github.com/skytracker/skytracker/internal/seniverse"
)

// Features is the set of controllers reachable once the gate is unlocked.
type Features struct {
	Weather    *feature.Weather
	AirQuality *feature.AirQuality
	Lifestyle  *feature.Lifestyle
	Ocean      *feature.Ocean
	Geo        *feature.Geo
	Helper     *feature.Helper
}

// NewFeatures builds every controller on top of client.
func NewFeatures(client *seniverse.Client) *Features {
	return &Features{
		Weather:    feature.NewWeather(client),
		AirQuality: feature.NewAirQuality(client),
		Lifestyle:  feature.NewLifestyle(client),
		Ocean:      feature.NewOcean(client),
		Geo:        feature.NewGeo(client),
		Helper:     feature.NewHelper(client),
	}
}

// ShellConfig holds the collaborators of a Shell.
type ShellConfig struct {
	Client   *seniverse.Client
	Store    credential.Store
	Registry *resilience.Registry
	Logger   zerolog.Logger
}

// Shell wires the gate to the controllers.
type Shell struct {
	client   *seniverse.Client
	gate     *credential.Gate
	registry *resilience.Registry
	logger   zerolog.Logger

	features   atomic.Pointer[Features]
	generation atomic.Int64
}

// NewShell creates a locked shell.
func NewShell(cfg ShellConfig) *Shell {
	registry := cfg.Registry
	if registry == nil {
		registry = resilience.NewRegistry()
	}

	s := &Shell{
		client:   cfg.Client,
		gate:     credential.NewGate(cfg.Client, cfg.Store, cfg.Logger),
		registry: registry,
		logger:   cfg.Logger,
	}
	s.gate.OnUnlock(s.rebuild)
	return s
}

// Start restores a saved key, then falls back to presetKey when one is given.
// It reports whether the shell is unlocked.
func (s *Shell) Start(ctx context.Context, presetKey string) bool {
	if s.gate.Restore(ctx) {
		return true
	}
	if presetKey == "" {
		return false
	}
	if err := s.gate.Activate(ctx, presetKey); err != nil {
		s.logger.Warn().Err(err).Msg("preset api key rejected")
		return false
	}
	return true
}

// Gate returns the credential gate.
func (s *Shell) Gate() *credential.Gate {
	return s.gate
}

// Registry returns the vendor health registry.
func (s *Shell) Registry() *resilience.Registry {
	return s.registry
}

// Unlocked reports whether an accepted API key is active.
func (s *Shell) Unlocked() bool {
	return s.gate.Unlocked()
}

// Confirm validates token and unlocks the shell on success.
// The key is saved for the next start when persist is true.
func (s *Shell) Confirm(ctx context.Context, token string, persist bool) error {
	return s.gate.Confirm(ctx, token, persist)
}

// Features returns the current controllers, or nil while locked.
func (s *Shell) Features() *Features {
	if !s.gate.Unlocked() {
		return nil
	}
	return s.features.Load()
}

// Generation counts how many times the controllers have been built.
func (s *Shell) Generation() int64 {
	return s.generation.Load()
}

// Forget locks the shell and drops the controllers.
func (s *Shell) Forget(ctx context.Context) error {
	s.features.Store(nil)
	return s.gate.Forget(ctx)
}

func (s *Shell) rebuild() {
	s.features.Store(NewFeatures(s.client))
	gen := s.generation.Add(1)
	s.logger.Debug().Int64("generation", gen).Msg("feature controllers built")
}
