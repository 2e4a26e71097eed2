package handlers

import (
	"context"
	"net/http"

	"github.com/wonny/twdiff/pkg/database"
)

// DBHealthChecker reports database health
type DBHealthChecker interface {
	HealthCheck(ctx context.Context) database.HealthStatus
}

// HealthHandler reports service liveness
type HealthHandler struct {
	service  string
	provider string
	db       DBHealthChecker // nil unless the postgres provider is active
}

// NewHealthHandler creates a new health handler; db may be nil
func NewHealthHandler(service, provider string, db DBHealthChecker) *HealthHandler {
	return &HealthHandler{
		service:  service,
		provider: provider,
		db:       db,
	}
}

// Check returns server health status
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":   "ok",
		"service":  h.service,
		"provider": h.provider,
	}

	status := http.StatusOK
	if h.db != nil {
		dbStatus := h.db.HealthCheck(r.Context())
		body["database"] = dbStatus
		if !dbStatus.Healthy {
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, status, body)
}
