// Package handler provides HTTP handlers for the SkyTracker API.
package handler

import (
	"net/http"
	"time"

	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/api/response"
	"github.com/skytracker/skytracker/internal/provider/resilience"
)

// StatusSource reports the gate state and the vendor health.
type StatusSource interface {
	Unlocked() bool
	Registry() *resilience.Registry
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	source StatusSource
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(source StatusSource) *OpsHandler {
	return &OpsHandler{source: source}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - gate and vendor status.
// A locked gate or an open circuit degrades the overall status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Providers: []models.ProviderStatus{},
	}

	gate := models.SubsystemStatus{Name: "credential", Status: models.HealthStatusOK}
	if !h.source.Unlocked() {
		detail := "locked: no accepted API key"
		gate.Status = models.HealthStatusDegraded
		gate.Detail = &detail
		status.Status = models.HealthStatusDegraded
	}
	status.Subsystems = []models.SubsystemStatus{gate}

	for _, health := range h.source.Registry().All() {
		provider := providerStatus(health)
		if provider.Status != models.HealthStatusOK {
			status.Status = models.HealthStatusDegraded
		}
		status.Providers = append(status.Providers, provider)
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(health *resilience.ProviderHealth) models.ProviderStatus {
	status := models.ProviderStatus{
		Provider:      health.Name,
		Status:        models.HealthStatusOK,
		CircuitState:  health.CircuitState.String(),
		LastSuccessAt: models.NewTimestamp(health.LastSuccessAt),
		LastFailureAt: models.NewTimestamp(health.LastFailureAt),
	}
	switch {
	case health.IsDegraded():
		status.Status = models.HealthStatusDegraded
	case !health.IsHealthy():
		status.Status = models.HealthStatusFail
	}
	if health.LastError != "" {
		msg := health.LastError
		status.Message = &msg
	}
	return status
}
