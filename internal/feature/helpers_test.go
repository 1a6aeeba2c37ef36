package feature_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// response is a canned vendor reply.
type response struct {
	status int
	body   string
}

// fakeVendor serves canned bodies by path and counts calls. Routes may be
// replaced between calls to simulate a later failure.
type fakeVendor struct {
	mu     sync.Mutex
	routes map[string]response
	calls  int
	last   *http.Request
}

func newFakeVendor(t *testing.T, routes map[string]string) (*fakeVendor, *seniverse.Client) {
	t.Helper()
	v := &fakeVendor{routes: make(map[string]response)}
	for path, body := range routes {
		v.routes[path] = response{status: http.StatusOK, body: body}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v.mu.Lock()
		v.calls++
		v.last = r
		resp, ok := v.routes[r.URL.Path]
		v.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)

	client := seniverse.NewClient(seniverse.ClientConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Logger:  zerolog.Nop(),
	})
	return v, client
}

func (v *fakeVendor) set(path string, status int, body string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.routes[path] = response{status: status, body: body}
}

func (v *fakeVendor) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

func (v *fakeVendor) lastQuery(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.last == nil {
		return ""
	}
	return v.last.URL.Query().Get(name)
}
