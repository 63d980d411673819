package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/ports"
)

// HealthHandler exposes a readiness probe.
type HealthHandler struct {
	DB    ports.HealthChecker
	Clock ports.Clock
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.DB.Health(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	writeRawJSON(w, code, map[string]string{
		"status": status,
		"time":   h.Clock.Now().UTC().Format(time.RFC3339),
	})
}
