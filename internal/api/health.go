package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/reprotocol/refaq/internal/identity"
	"github.com/reprotocol/refaq/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	repo          store.Repository
	remoteEnabled bool
}

// NewHealthHandler creates a new health handler. remoteEnabled reflects
// whether a completion API key is configured; it is reported for
// diagnostics and never changes pipeline behavior.
func NewHealthHandler(repo store.Repository, remoteEnabled bool) *HealthHandler {
	return &HealthHandler{repo: repo, remoteEnabled: remoteEnabled}
}

// Health returns the health status of the API and its dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]interface{}{
		"status": "healthy",
		"checks": map[string]string{"api": "ok"},
	}
	statusCode := http.StatusOK

	if err := h.repo.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		status["status"] = "degraded"
		status["checks"].(map[string]string)["database"] = "unreachable"
		statusCode = http.StatusServiceUnavailable
	} else {
		status["checks"].(map[string]string)["database"] = "ok"
	}

	if h.remoteEnabled {
		status["checks"].(map[string]string)["remote_completions"] = "configured"
	} else {
		status["checks"].(map[string]string)["remote_completions"] = "disabled"
	}

	JSON(w, statusCode, status)
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/healthz", h.Health)
}

// MeHandler exposes the anonymous identity to the frontend.
type MeHandler struct {
	repo          store.Repository
	remoteEnabled bool
}

// NewMeHandler creates a handler for identity and widget-config routes.
func NewMeHandler(repo store.Repository, remoteEnabled bool) *MeHandler {
	return &MeHandler{repo: repo, remoteEnabled: remoteEnabled}
}

// GetMe returns the current user's information.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		Error(w, http.StatusUnauthorized, "user not found")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// GetConfig returns the server configuration for the frontend.
func (h *MeHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"ai_enabled": h.remoteEnabled,
	})
}

// RegisterRoutes registers identity routes.
func (h *MeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.GetMe)
		r.Get("/config", h.GetConfig)
	})
}
