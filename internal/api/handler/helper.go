package handler

import "net/http"

// HelperHandler serves the location search screen.
type HelperHandler struct {
	screens Screens
}

// NewHelperHandler creates a new HelperHandler.
func NewHelperHandler(screens Screens) *HelperHandler {
	return &HelperHandler{screens: screens}
}

// Search handles GET /v1/helper/search?q= and shows the first match.
func (h *HelperHandler) Search(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Helper.Search(r.Context(), r.URL.Query().Get("q"))
	writePage(w, r, page, err)
}

// Next handles POST /v1/helper/search/next.
func (h *HelperHandler) Next(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Helper.Next()
	writePage(w, r, page, err)
}

// Prev handles POST /v1/helper/search/prev.
func (h *HelperHandler) Prev(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Helper.Prev()
	writePage(w, r, page, err)
}
