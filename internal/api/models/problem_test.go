package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytracker/skytracker/internal/api/models"
)

func TestProblem_Builders(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	)

	assert.Empty(t, p.Detail)
	assert.Empty(t, p.Instance)
	assert.Nil(t, p.Errors)

	p.WithDetail("days must be between 1 and 15").
		WithInstance("/v1/weather/daily").
		WithErrors([]models.FieldError{{Field: "days", Message: "must be between 1 and 15", Code: "OUT_OF_RANGE"}})

	assert.Equal(t, "days must be between 1 and 15", p.Detail)
	assert.Equal(t, "/v1/weather/daily", p.Instance)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "OUT_OF_RANGE", p.Errors[0].Code)
}

func TestProblem_Write(t *testing.T) {
	p := models.NewBadRequest("req_test123", "invalid input", []models.FieldError{
		{Field: "location", Message: "must not be empty"},
	})
	p.Instance = "/v1/weather/current"

	w := httptest.NewRecorder()
	p.Write(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "req_test123", w.Header().Get("X-Request-Id"))

	var result models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, models.ProblemTypeValidation, result.Type)
	assert.Equal(t, "invalid input", result.Detail)
	assert.Equal(t, "/v1/weather/current", result.Instance)
	assert.Equal(t, "req_test123", result.TraceID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "location", result.Errors[0].Field)
}

func TestProblem_Constructors(t *testing.T) {
	tests := []struct {
		name      string
		problem   *models.Problem
		wantType  string
		wantTitle string
		status    int
	}{
		{"bad request", models.NewBadRequest("req_1", "detail", nil), models.ProblemTypeValidation, "Validation error", http.StatusBadRequest},
		{"forbidden", models.NewForbidden("req_1", "detail"), models.ProblemTypeLocked, "API key required", http.StatusForbidden},
		{"not found", models.NewNotFound("req_1", "detail"), models.ProblemTypeNotFound, "No data", http.StatusNotFound},
		{"too many requests", models.NewTooManyRequests("req_1", "detail"), models.ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests},
		{"internal", models.NewInternalError("req_1", "detail"), models.ProblemTypeInternal, "Internal server error", http.StatusInternalServerError},
		{"bad gateway", models.NewBadGateway("req_1", "detail"), models.ProblemTypeUpstream, "Weather service request failed", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.problem.Type)
			assert.Equal(t, tt.wantTitle, tt.problem.Title)
			assert.Equal(t, tt.status, tt.problem.Status)
			assert.Equal(t, "detail", tt.problem.Detail)
			assert.Equal(t, "req_1", tt.problem.TraceID)
		})
	}
}
