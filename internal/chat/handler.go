package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reprotocol/refaq/internal/domain"
	"github.com/reprotocol/refaq/internal/identity"
	"github.com/reprotocol/refaq/internal/ratelimit"
)

// maxRequestBodySize caps chat request bodies (1MB).
const maxRequestBodySize = 1 << 20

// AskRequest is the POST /api/chat payload.
type AskRequest struct {
	Message string `json:"message"`
}

// AskResponse is the POST /api/chat payload on success.
type AskResponse struct {
	Message         domain.ChatMessage `json:"message"`
	RemainingDaily  int                `json:"remaining_daily"`
	RemainingHourly int                `json:"remaining_hourly"`
}

// Handler serves the chat pipeline over HTTP.
type Handler struct {
	resolver   *Resolver
	limiter    *ratelimit.Limiter
	transcript TranscriptLogger
}

// NewHandler creates a chat handler. transcript may be nil.
func NewHandler(resolver *Resolver, limiter *ratelimit.Limiter, transcript TranscriptLogger) *Handler {
	if transcript == nil {
		transcript = NoopTranscriptLogger{}
	}
	return &Handler{
		resolver:   resolver,
		limiter:    limiter,
		transcript: transcript,
	}
}

// HandleAsk handles POST /api/chat requests: rate gate, resolve, reply.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	decision, err := h.limiter.CheckLimit(r.Context(), userID)
	if err != nil {
		// The gate must not take the whole widget down with it: log and
		// let the question through.
		slog.Error("Rate limit check failed, allowing request", "error", err, "user_id", userID)
		decision = domain.RateDecision{CanAsk: true}
	}
	if !decision.CanAsk {
		slog.Info("Question denied by rate limit", "user_id", userID)
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":            "rate_limit_reached",
			"message":          FormatRateLimitDenial(decision),
			"remaining_daily":  decision.RemainingDaily,
			"remaining_hourly": decision.RemainingHourly,
		})
		return
	}

	if err := h.limiter.RecordUsage(r.Context(), userID); err != nil {
		slog.Error("Failed to record usage", "error", err, "user_id", userID)
	}

	slog.Info("Chat question", "user_id", userID, "message_length", len(req.Message))
	h.transcript.Log(TranscriptEvent{UserID: userID, Direction: "user", Content: req.Message})

	reply, source := h.resolver.Resolve(r.Context(), req.Message)
	msg := domain.NewAssistantMessage(reply)

	h.transcript.Log(TranscriptEvent{
		UserID:    userID,
		Direction: "assistant",
		Source:    string(source),
		Content:   reply,
	})

	remaining, err := h.limiter.CheckLimit(r.Context(), userID)
	if err != nil {
		slog.Warn("Failed to refresh remaining quota", "error", err, "user_id", userID)
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Message:         msg,
		RemainingDaily:  remaining.RemainingDaily,
		RemainingHourly: remaining.RemainingHourly,
	})
}

// HandleLimits handles GET /api/chat/limits: remaining quota for display.
func (h *Handler) HandleLimits(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	decision, err := h.limiter.CheckLimit(r.Context(), userID)
	if err != nil {
		slog.Error("Rate limit check failed", "error", err, "user_id", userID)
		writeJSONError(w, http.StatusInternalServerError, "failed to load limits")
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", h.HandleAsk)
		r.Get("/limits", h.HandleLimits)
	})
}

// FormatRateLimitDenial renders the user-visible denial message with the
// remaining-quota figures, matching the widget's banner format.
func FormatRateLimitDenial(decision domain.RateDecision) string {
	return fmt.Sprintf(
		"⚠️ **Rate Limit Reached**\n\n%s\n\n**Your Usage:**\n• Daily: %d questions remaining\n• Hourly: %d questions remaining\n\nPlease try again later!",
		decision.Message, decision.RemainingDaily, decision.RemainingHourly)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode chat response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
