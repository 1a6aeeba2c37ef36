package handler

import (
	"net/http"

	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/feature"
)

// AirHandler serves the air quality screens.
type AirHandler struct {
	screens Screens
}

// NewAirHandler creates a new AirHandler.
func NewAirHandler(screens Screens) *AirHandler {
	return &AirHandler{screens: screens}
}

// Current handles GET /v1/air/current?location=.
func (h *AirHandler) Current(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	view, err := f.AirQuality.Current(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, view, err)
}

// Ranking handles GET /v1/air/ranking. Without q it fetches the ranking;
// with q it filters the last fetched ranking without calling the vendor.
func (h *AirHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}

	query, filtered := r.URL.Query()["q"]
	var (
		entries []feature.RankingEntry
		err     error
	)
	if filtered {
		entries, err = f.AirQuality.FilterRanking(query[0])
	} else {
		entries, err = f.AirQuality.Ranking(r.Context())
	}
	if err != nil {
		fail(w, r, err)
		return
	}

	body := models.RankingResponse[feature.RankingEntry]{Entries: entries}
	if filtered {
		body.Query = query[0]
	}
	writeValue(w, r, body, nil)
}

// Daily handles GET /v1/air/daily?location= and shows the first day.
func (h *AirHandler) Daily(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.AirQuality.Daily(r.Context(), r.URL.Query().Get("location"))
	writePage(w, r, page, err)
}

// NextDay handles POST /v1/air/daily/next.
func (h *AirHandler) NextDay(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.AirQuality.NextDay()
	writePage(w, r, page, err)
}

// PrevDay handles POST /v1/air/daily/prev.
func (h *AirHandler) PrevDay(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.AirQuality.PrevDay()
	writePage(w, r, page, err)
}

// Hourly handles GET /v1/air/hourly?location=.
func (h *AirHandler) Hourly(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.AirQuality.Hourly(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, series, err)
}

// History handles GET /v1/air/history?location=.
func (h *AirHandler) History(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.AirQuality.HourlyHistory(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, series, err)
}
