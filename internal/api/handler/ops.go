// Package handler provides HTTP handlers for the Store Locator API.
package handler

import (
	"net/http"
	"time"

	"github.com/storelocator/storelocator/internal/api/models"
	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/provider/resilience"
	"github.com/storelocator/storelocator/internal/session"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	catalog   *catalog.Service
	sessions  *session.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, catalogSvc *catalog.Service, sessions *session.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		catalog:   catalogSvc,
		sessions:  sessions,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The service is ready once the location catalog is loadable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Count(r.Context()); err != nil {
		health := models.Health{
			Status: models.HealthStatusFail,
			Time:   models.Timestamp(time.Now()),
			Details: map[string]interface{}{
				"catalog": "unavailable",
			},
		}
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	overall := models.HealthStatusOK

	catalogStatus := models.SubsystemStatus{Name: "catalog", Status: models.HealthStatusOK}
	count, err := h.catalog.Count(r.Context())
	if err != nil {
		catalogStatus.Status = models.HealthStatusFail
		detail := err.Error()
		catalogStatus.Detail = &detail
		overall = models.HealthStatusFail
	} else if count == 0 {
		catalogStatus.Status = models.HealthStatusDegraded
		detail := "catalog is empty"
		catalogStatus.Detail = &detail
		if overall == models.HealthStatusOK {
			overall = models.HealthStatusDegraded
		}
	}

	status := models.SystemStatus{
		Time:       now,
		Subsystems: []models.SubsystemStatus{catalogStatus, {Name: "sessions", Status: models.HealthStatusOK}},
		Providers:  []models.ProviderStatus{},
	}

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			ps := models.ProviderStatus{
				Provider: ph.Name,
				Status:   models.HealthStatusOK,
			}
			switch {
			case ph.IsUnhealthy():
				ps.Status = models.HealthStatusFail
				overall = models.HealthStatusFail
			case ph.IsDegraded():
				ps.Status = models.HealthStatusDegraded
				if overall == models.HealthStatusOK {
					overall = models.HealthStatusDegraded
				}
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				ps.Message = &msg
			}
			status.Providers = append(status.Providers, ps)
		}
	}

	status.Status = overall
	response.JSON(w, r, http.StatusOK, status)
}
