package credential_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytracker/skytracker/internal/credential"
	"github.com/skytracker/skytracker/internal/seniverse"
)

// fakeVendor answers weather/now.json according to the key it receives.
func fakeVendor(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if r.URL.Path != "/weather/now.json" || q.Get("location") != credential.ValidationLocation {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch q.Get("key") {
		case "good-key", "other-key":
			_, _ = w.Write([]byte(`{"results":[{"location":{"name":"北京"},"now":{"temperature":"3"}}]}`))
		case "empty-key":
			_, _ = w.Write([]byte(`{"results":[]}`))
		case "odd-key":
			_, _ = w.Write([]byte(`{"results":{"unexpected":true}}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":"The API key is invalid.","status_code":"AP010003"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newGate(t *testing.T, store credential.Store) (*credential.Gate, *seniverse.Client, *atomic.Int32) {
	t.Helper()
	srv, calls := fakeVendor(t)
	client := seniverse.NewClient(seniverse.ClientConfig{BaseURL: srv.URL, Logger: zerolog.Nop()})
	return credential.NewGate(client, store, zerolog.Nop()), client, calls
}

func TestGate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    bool
		wantErr error
	}{
		{name: "valid key", key: "good-key", want: true},
		{name: "empty results", key: "empty-key", want: false},
		{name: "unexpected shape", key: "odd-key", want: false},
		{name: "rejected key", key: "bad-key", wantErr: seniverse.ErrRequestFailed},
		{name: "no key", key: "", wantErr: seniverse.ErrNotConfigured},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate, _, _ := newGate(t, nil)
			gate.SetCredential(tc.key)

			got, err := gate.Validate(context.Background())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGate_ValidateWithoutKeySendsNothing(t *testing.T) {
	gate, _, calls := newGate(t, nil)

	_, err := gate.Validate(context.Background())
	assert.ErrorIs(t, err, seniverse.ErrNotConfigured)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGate_ConfirmPersists(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	gate, client, _ := newGate(t, store)

	var unlocks atomic.Int32
	gate.OnUnlock(func() { unlocks.Add(1) })

	require.NoError(t, gate.Confirm(ctx, "  good-key  ", true))

	assert.True(t, gate.Unlocked())
	assert.True(t, client.HasAPIKey())
	assert.Equal(t, int32(1), unlocks.Load())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "good-key", saved)
}

func TestGate_ConfirmDeclineToSaveRemovesSavedKey(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "old-key"))
	gate, _, _ := newGate(t, store)

	require.NoError(t, gate.Confirm(ctx, "good-key", false))

	assert.True(t, gate.Unlocked())
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, credential.ErrNoCredential)
}

func TestGate_ConfirmFailures(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
		calls   int32
	}{
		{name: "empty token", token: "   ", wantErr: seniverse.ErrInvalidInput, calls: 0},
		{name: "rejected by vendor", token: "bad-key", wantErr: seniverse.ErrRequestFailed, calls: 1},
		{name: "no data for probe", token: "empty-key", wantErr: credential.ErrInvalidCredential, calls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := credential.NewMemoryStore()
			require.NoError(t, store.Save(ctx, "kept-key"))
			gate, client, calls := newGate(t, store)

			var unlocks atomic.Int32
			gate.OnUnlock(func() { unlocks.Add(1) })

			err := gate.Confirm(ctx, tc.token, true)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, gate.Unlocked())
			assert.False(t, client.HasAPIKey())
			assert.Equal(t, int32(0), unlocks.Load())
			assert.Equal(t, tc.calls, calls.Load())

			saved, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "kept-key", saved, "storage must be untouched")
		})
	}
}

func TestGate_ConfirmFailureKeepsPreviousSession(t *testing.T) {
	ctx := context.Background()
	gate, client, _ := newGate(t, nil)
	require.NoError(t, gate.Confirm(ctx, "good-key", false))

	err := gate.Confirm(ctx, "bad-key", false)
	require.Error(t, err)

	assert.True(t, gate.Unlocked())
	assert.True(t, client.HasAPIKey())
	ok, err := gate.Validate(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGate_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		gate, _, calls := newGate(t, credential.NewMemoryStore())
		assert.False(t, gate.Restore(ctx))
		assert.False(t, gate.Unlocked())
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("valid saved key", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(ctx, "good-key"))
		gate, _, _ := newGate(t, store)

		var unlocks atomic.Int32
		gate.OnUnlock(func() { unlocks.Add(1) })

		assert.True(t, gate.Restore(ctx))
		assert.True(t, gate.Unlocked())
		assert.Equal(t, int32(1), unlocks.Load())
	})

	t.Run("rejected saved key stays silent", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(ctx, "bad-key"))
		gate, client, _ := newGate(t, store)

		assert.False(t, gate.Restore(ctx))
		assert.False(t, gate.Unlocked())
		assert.False(t, client.HasAPIKey())

		saved, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bad-key", saved)
	})

	t.Run("store failure", func(t *testing.T) {
		gate, _, calls := newGate(t, failingStore{})
		assert.False(t, gate.Restore(ctx))
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestGate_Forget(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	gate, client, _ := newGate(t, store)
	require.NoError(t, gate.Confirm(ctx, "good-key", true))

	require.NoError(t, gate.Forget(ctx))

	assert.False(t, gate.Unlocked())
	assert.False(t, client.HasAPIKey())
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, credential.ErrNoCredential)
}

func TestGate_ForgetStoreFailure(t *testing.T) {
	gate, _, _ := newGate(t, failingStore{})
	err := gate.Forget(context.Background())
	assert.ErrorIs(t, err, errStore)
	assert.False(t, gate.Unlocked())
}

var errStore = errors.New("store unavailable")

type failingStore struct{}

func (failingStore) Load(context.Context) (string, error) { return "", errStore }
func (failingStore) Save(context.Context, string) error   { return errStore }
func (failingStore) Delete(context.Context) error         { return errStore }

func TestGate_ActivateLeavesStorageAlone(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "saved-key"))
	gate, _, _ := newGate(t, store)

	require.NoError(t, gate.Activate(ctx, "good-key"))
	assert.True(t, gate.Unlocked())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", saved)
}
