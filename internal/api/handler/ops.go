package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aquagrid/aquagrid/internal/api/models"
	"github.com/aquagrid/aquagrid/internal/api/response"
)

// Pinger is the persistence round-trip used by readiness checks.
// Implemented by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, db Pinger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check. Always UP
// while the process is responsive.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusUp,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Performs a
// database round-trip and reports connected/disconnected with elapsed
// time.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	readiness := h.probe(r.Context())

	status := http.StatusOK
	if readiness.Status != models.HealthStatusUp {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, readiness)
}

// SystemStatus handles GET /v1/ops/status - aggregate check. Reports
// DEGRADED when the database round-trip fails but the process itself is
// responsive.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	readiness := h.probe(r.Context())

	aggregate := models.HealthStatusUp
	if readiness.Status != models.HealthStatusUp {
		aggregate = models.HealthStatusDegraded
	}
	readiness.Status = aggregate

	response.JSON(w, r, http.StatusOK, readiness)
}

func (h *OpsHandler) probe(ctx context.Context) models.Readiness {
	started := time.Now()
	err := h.db.Ping(ctx)
	elapsed := time.Since(started)

	readiness := models.Readiness{
		Status: models.HealthStatusUp,
		Time:   models.Timestamp(time.Now()),
		Database: models.DatabaseStatus{
			State:     "connected",
			ElapsedMS: elapsed.Milliseconds(),
		},
	}
	if err != nil {
		readiness.Status = models.HealthStatusDown
		readiness.Database.State = "disconnected"
		readiness.Database.Error = err.Error()
	}
	return readiness
}
