package handler

import "net/http"

const defaultGeoDays = "1"

// GeoHandler serves the sun and moon screens.
type GeoHandler struct {
	screens Screens
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(screens Screens) *GeoHandler {
	return &GeoHandler{screens: screens}
}

// Sun handles GET /v1/geo/sun?location=&days=.
func (h *GeoHandler) Sun(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.Geo.Sun(r.Context(), r.URL.Query().Get("location"), queryOr(r, "days", defaultGeoDays))
	writeValue(w, r, series, err)
}

// Moon handles GET /v1/geo/moon?location=&days=.
func (h *GeoHandler) Moon(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.Geo.Moon(r.Context(), r.URL.Query().Get("location"), queryOr(r, "days", defaultGeoDays))
	writeValue(w, r, series, err)
}
