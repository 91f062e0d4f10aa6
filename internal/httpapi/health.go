package httpapi

import (
	"context"
	"net/http"

	"github.com/socialpulse/engine/pkg/logger"
)

// Pinger is satisfied by the Postgres pool and by a small redis.Client
// adapter (redis.Client.Ping returns *redis.StatusCmd, not error).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks, following the
// teacher's health.go pattern.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	log   *logger.Logger
}

// NewHealthHandler builds a HealthHandler. db and cache may be nil, in
// which case Ready skips that dependency's check.
func NewHealthHandler(db, cache Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, log: log}
}

// Check handles GET /v1/healthz: process liveness only.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "social-decisioning-engine",
	})
}

// Ready handles GET /v1/readyz: verifies downstream dependencies.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	ready := true

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["database"] = "unavailable: " + err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			checks["cache"] = "unavailable: " + err.Error()
			ready = false
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]interface{}{
		"status": map[bool]string{true: "ready", false: "not_ready"}[ready],
		"checks": checks,
	})
}
