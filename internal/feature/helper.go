package feature

import (
	"context"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

var placeFields = []string{"id", "name", "country", "path", "timezone", "timezone_offset"}

// HelperSource is the subset of the client used by the search screen.
type HelperSource interface {
	SearchLocations(ctx context.Context, query string) (seniverse.Document, error)
}

// Helper drives the place search screen.
type Helper struct {
	source HelperSource

	mu      sync.Mutex
	matches *Cursor[View]
}

// NewHelper creates a search controller.
func NewHelper(source HelperSource) *Helper {
	return &Helper{source: source}
}

// Search looks up places by name and shows the first match.
func (h *Helper) Search(ctx context.Context, query string) (Page[View], error) {
	query, err := RequireText("q", query)
	if err != nil {
		return Page[View]{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	doc, err := h.source.SearchLocations(ctx, query)
	if err != nil {
		return Page[View]{}, err
	}
	items, err := seniverse.Items(doc, "results")
	if err != nil {
		return Page[View]{}, err
	}

	h.matches = NewCursor(ExtractAll(items, placeFields...))
	return h.matches.Current()
}

// Next moves to the next match.
func (h *Helper) Next() (Page[View], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.matches.Next()
}

// Prev moves to the previous match.
func (h *Helper) Prev() (Page[View], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.matches.Prev()
}
