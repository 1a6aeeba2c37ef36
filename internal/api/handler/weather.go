package handler

import "net/http"

// Default counts used when the query omits them.
const (
	defaultDays  = "5"
	defaultHours = "24"
)

// WeatherHandler serves the weather screens.
type WeatherHandler struct {
	screens Screens
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(screens Screens) *WeatherHandler {
	return &WeatherHandler{screens: screens}
}

// Current handles GET /v1/weather/current?location=.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	view, err := f.Weather.Current(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, view, err)
}

// Daily handles GET /v1/weather/daily?location=&days=.
func (h *WeatherHandler) Daily(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.Weather.Daily(r.Context(), r.URL.Query().Get("location"), queryOr(r, "days", defaultDays))
	writeValue(w, r, series, err)
}

// Hourly handles GET /v1/weather/hourly?location=&hours=.
func (h *WeatherHandler) Hourly(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.Weather.Hourly(r.Context(), r.URL.Query().Get("location"), queryOr(r, "hours", defaultHours))
	writeValue(w, r, series, err)
}

// History handles GET /v1/weather/history?location=.
func (h *WeatherHandler) History(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	series, err := f.Weather.History(r.Context(), r.URL.Query().Get("location"))
	writeValue(w, r, series, err)
}

// Alerts handles GET /v1/weather/alerts?location= and shows the first alert.
func (h *WeatherHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Weather.Alerts(r.Context(), r.URL.Query().Get("location"))
	writePage(w, r, page, err)
}

// NextAlert handles POST /v1/weather/alerts/next.
func (h *WeatherHandler) NextAlert(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Weather.NextAlert()
	writePage(w, r, page, err)
}

// PrevAlert handles POST /v1/weather/alerts/prev.
func (h *WeatherHandler) PrevAlert(w http.ResponseWriter, r *http.Request) {
	f, ok := current(w, r, h.screens)
	if !ok {
		return
	}
	page, err := f.Weather.PrevAlert()
	writePage(w, r, page, err)
}
