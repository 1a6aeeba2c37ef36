package handler

import (
	"net/http"

	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/api/response"
	"github.com/skytracker/skytracker/internal/feature"
)

// LifeHandler serves the lifestyle index, lunar calendar and driving
// restriction screens.
type LifeHandler struct {
	screens Screens
}

// NewLifeHandler creates a new LifeHandler.
func NewLifeHandler(screens Screens) *LifeHandler {
	return &LifeHandler{screens: screens}
}

// Index handles GET /v1/life/index?location= and shows the first day.
func (h *LifeHandler) Index(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Lifestyle.Index(r.Context(), r.URL.Query().Get("location"))
	writePage(w, r, page, err)
}

// NextIndex handles POST /v1/life/index/next.
func (h *LifeHandler) NextIndex(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Lifestyle.NextIndex()
	writePage(w, r, page, err)
}

// PrevIndex handles POST /v1/life/index/prev.
func (h *LifeHandler) PrevIndex(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Lifestyle.PrevIndex()
	writePage(w, r, page, err)
}

// Lunar handles GET /v1/life/lunar.
func (h *LifeHandler) Lunar(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	view, err := f.Lifestyle.LunarCalendar(r.Context())
	writeValue(w, r, view, err)
}

// Restriction handles GET /v1/life/restriction?location=.
func (h *LifeHandler) Restriction(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	restriction, err := f.Lifestyle.VehicleRestriction(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, restriction, err)
}

// RestrictionCities handles GET /v1/life/restriction/cities.
func (h *LifeHandler) RestrictionCities(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.CitiesResponse[feature.City]{Cities: feature.RestrictionCities})
}
