// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skytracker/skytracker/internal/api/middleware"
	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/credential"
	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/seniverse"
)

// JSON writes a JSON response with the given status code.
// Includes X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter, r *http.Request) {
	setRequestID(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func setRequestID(w http.ResponseWriter, r *http.Request) {
	if requestID := middleware.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
}

// Error writes a Problem+JSON error response.
func Error(w http.ResponseWriter, r *http.Request, problem *models.Problem) {
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string, errors []models.FieldError) {
	Error(w, r, models.NewBadRequest(middleware.GetRequestID(r.Context()), detail, errors))
}

// Forbidden writes a 403 error response for requests made while locked.
func Forbidden(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewForbidden(middleware.GetRequestID(r.Context()), detail))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewNotFound(middleware.GetRequestID(r.Context()), detail))
}

// BadGateway writes a 502 error response for a failed vendor call.
func BadGateway(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewBadGateway(middleware.GetRequestID(r.Context()), detail))
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewInternalError(middleware.GetRequestID(r.Context()), detail))
}

// Status returns the HTTP status FromError writes for err.
func Status(err error) int {
	switch {
	case errors.Is(err, seniverse.ErrInvalidInput), errors.Is(err, credential.ErrInvalidCredential):
		return http.StatusBadRequest
	case errors.Is(err, seniverse.ErrNotConfigured):
		return http.StatusForbidden
	case errors.Is(err, seniverse.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, seniverse.ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the problem matching a client, gate or controller error.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	switch Status(err) {
	case http.StatusBadRequest:
		var inputErr *feature.InputError
		if errors.As(err, &inputErr) {
			BadRequest(w, r, inputErr.Error(), []models.FieldError{
				{Field: inputErr.Field, Message: inputErr.Message, Code: "INVALID"},
			})
			return
		}
		BadRequest(w, r, err.Error(), nil)
	case http.StatusForbidden:
		Forbidden(w, r, err.Error())
	case http.StatusNotFound:
		NotFound(w, r, err.Error())
	case http.StatusBadGateway:
		BadGateway(w, r, err.Error())
	default:
		InternalError(w, r, "an unexpected error occurred")
	}
}
