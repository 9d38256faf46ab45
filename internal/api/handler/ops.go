// Package handler provides HTTP handlers for the VoltGo API.
package handler

import (
	"net/http"
	"time"

	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/api/response"
	"github.com/Shashankvwali/VoltGo/internal/station"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	catalog   *station.Catalog
}

// NewOpsHandler creates a new OpsHandler. The service is ready once a
// non-empty catalog is loaded.
func NewOpsHandler(version, buildTime string, catalog *station.Catalog) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		catalog:   catalog,
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
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	size := 0
	if h.catalog != nil {
		size = h.catalog.Len()
	}

	health := models.Health{
		Status:  models.HealthStatusOK,
		Time:    models.Timestamp(time.Now()),
		Details: map[string]interface{}{"catalogSize": size},
	}

	status := http.StatusOK
	if size == 0 {
		health.Status = models.HealthStatusFail
		status = http.StatusServiceUnavailable
	}

	response.JSON(w, r, status, health)
}
