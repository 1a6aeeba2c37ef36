package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytracker/skytracker/internal/app"
	"github.com/skytracker/skytracker/internal/credential"
	"github.com/skytracker/skytracker/internal/seniverse"
)

func newShell(t *testing.T, store credential.Store) *app.Shell {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "good-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"now":{"temperature":"5"}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := seniverse.NewClient(seniverse.ClientConfig{BaseURL: srv.URL, Logger: zerolog.Nop()})
	return app.NewShell(app.ShellConfig{Client: client, Store: store, Logger: zerolog.Nop()})
}

func TestShell_LockedHasNoFeatures(t *testing.T) {
	shell := newShell(t, credential.NewMemoryStore())

	assert.False(t, shell.Start(context.Background(), ""))
	assert.Nil(t, shell.Features())
	assert.Equal(t, int64(0), shell.Generation())
}

func TestShell_BuildsOncePerUnlock(t *testing.T) {
	ctx := context.Background()
	shell := newShell(t, credential.NewMemoryStore())

	require.NoError(t, shell.Confirm(ctx, "good-key", false))
	first := shell.Features()
	require.NotNil(t, first)
	assert.NotNil(t, first.Weather)
	assert.NotNil(t, first.Helper)
	assert.Equal(t, int64(1), shell.Generation())
	assert.Same(t, first, shell.Features(), "reads do not rebuild")

	require.Error(t, shell.Gate().Confirm(ctx, "bad-key", false))
	assert.Equal(t, int64(1), shell.Generation(), "failed confirm does not rebuild")

	require.NoError(t, shell.Gate().Confirm(ctx, "good-key", false))
	assert.Equal(t, int64(2), shell.Generation())
	assert.NotSame(t, first, shell.Features())
}

func TestShell_StartRestoresSavedKey(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "good-key"))
	shell := newShell(t, store)

	assert.True(t, shell.Start(ctx, ""))
	assert.NotNil(t, shell.Features())
}

func TestShell_StartUsesPresetKey(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	shell := newShell(t, store)

	assert.True(t, shell.Start(ctx, "good-key"))
	assert.NotNil(t, shell.Features())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, credential.ErrNoCredential, "preset key is not saved")
}

func TestShell_StartRejectsBadPreset(t *testing.T) {
	shell := newShell(t, credential.NewMemoryStore())
	assert.False(t, shell.Start(context.Background(), "bad-key"))
	assert.Nil(t, shell.Features())
}

func TestShell_Forget(t *testing.T) {
	ctx := context.Background()
	shell := newShell(t, credential.NewMemoryStore())
	require.NoError(t, shell.Confirm(ctx, "good-key", true))

	require.NoError(t, shell.Forget(ctx))
	assert.Nil(t, shell.Features())
	assert.False(t, shell.Gate().Unlocked())
}
