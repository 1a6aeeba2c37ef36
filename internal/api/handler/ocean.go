package handler

import "net/http"

// OceanHandler serves the tide screen.
type OceanHandler struct {
	screens Screens
}

// NewOceanHandler creates a new OceanHandler.
func NewOceanHandler(screens Screens) *OceanHandler {
	return &OceanHandler{screens: screens}
}

// Tide handles GET /v1/ocean/tide?port= and shows the first day.
func (h *OceanHandler) Tide(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Ocean.Tide(r.Context(), r.URL.Query().Get("port"))
	writePage(w, r, page, err)
}

// NextDay handles POST /v1/ocean/tide/next.
func (h *OceanHandler) NextDay(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Ocean.NextDay()
	writePage(w, r, page, err)
}

// PrevDay handles POST /v1/ocean/tide/prev.
func (h *OceanHandler) PrevDay(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Ocean.PrevDay()
	writePage(w, r, page, err)
}
