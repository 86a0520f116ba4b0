package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/508labs/spendings/internal/docstore"
)

// HealthHandler handles health check and diagnostic requests
type HealthHandler struct {
	store docstore.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store docstore.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Checks      map[string]string `json:"checks"`
	Collections []string          `json:"collections,omitempty"`
	Uptime      string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetRoot handles GET /
func GetRoot(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Spendings API running"})
}

// GetHealth handles GET /health
// Basic health check - returns 200 OK if service is running
func GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
		Checks:  map[string]string{},
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GetLiveness handles GET /health/live
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// GetHealthDetailed handles GET /health/detailed
// The only place a store outage is surfaced explicitly; business endpoints
// just propagate store failures as generic server errors.
func (h *HealthHandler) GetHealthDetailed(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "ok"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var collections []string
	if err := h.store.Ping(ctx); err != nil {
		checks["store"] = "unavailable: " + err.Error()
		status = "degraded"
	} else {
		checks["store"] = "healthy"
		if names, err := h.store.Collections(ctx); err == nil {
			collections = names
		} else {
			checks["store"] = "connected but degraded: " + err.Error()
			status = "degraded"
		}
	}

	httpStatus := http.StatusOK
	if status == "degraded" {
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:      status,
		Version:     "1.0.0",
		Uptime:      time.Since(startTime).String(),
		Checks:      checks,
		Collections: collections,
	}

	respondWithJSON(w, httpStatus, response)
}
