package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/api/response"
	"github.com/skytracker/skytracker/internal/app"
	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/seniverse"
)

// Screens exposes the controllers built for the active API key.
type Screens interface {
	Features() *app.Features
}

// current returns the active controllers, writing a 403 problem while locked.
// It covers a Forget landing between RequireUnlocked and the handler.
func current(w http.ResponseWriter, r *http.Request, screens Screens) (*app.Features, bool) {
	features := screens.Features()
	if features == nil {
		response.Forbidden(w, r, "submit an API key at /v1/credential first")
		return nil, false
	}
	return features, true
}

// fail logs err at the severity of its class and writes the matching problem.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var event *zerolog.Event
	switch {
	case errors.Is(err, seniverse.ErrInvalidInput):
		event = log.Warn()
	case errors.Is(err, seniverse.ErrNoData), errors.Is(err, seniverse.ErrNotConfigured):
		event = log.Info()
	default:
		event = log.Error()
	}
	event.Err(err).Str("path", r.URL.Path).Msg("screen request failed")

	response.FromError(w, r, err)
}

// writeValue writes v, or the problem for err.
func writeValue(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, v)
}

// writePage writes one cursor position. A boundary error is not a failure:
// the unchanged item is returned with a notice.
func writePage[T any](w http.ResponseWriter, r *http.Request, page feature.Page[T], err error) {
	body := models.PageResponse[T]{Item: page.Item, Index: page.Index, Total: page.Total}
	switch {
	case errors.Is(err, feature.ErrBoundary):
		body.Notice = err.Error()
	case err != nil:
		fail(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, body)
}

// queryOr returns the trimmed query parameter, or fallback when it is absent.
// A present but blank parameter is returned as is so validation can reject it.
func queryOr(r *http.Request, name, fallback string) string {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return fallback
	}
	return strings.TrimSpace(values[0])
}
