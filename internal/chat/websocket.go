package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/reprotocol/refaq/internal/domain"
	"github.com/reprotocol/refaq/internal/identity"
	"github.com/reprotocol/refaq/internal/ratelimit"
)

// wsInbound is a client-to-server WebSocket message.
type wsInbound struct {
	Type    string `json:"type"` // "ask"
	Content string `json:"content,omitempty"`
}

// wsOutbound is a server-to-client WebSocket message. For "partial" frames
// Content carries the cumulative revealed text so a dropped frame cannot
// corrupt the rendering.
type wsOutbound struct {
	Type            string `json:"type"` // "message", "partial", "done", "limit", "error"
	ID              string `json:"id,omitempty"`
	Content         string `json:"content,omitempty"`
	RemainingDaily  int    `json:"remaining_daily,omitempty"`
	RemainingHourly int    `json:"remaining_hourly,omitempty"`
}

// WebSocketHandler streams resolved replies word by word over a WebSocket.
// The reveal is purely presentation: the pipeline resolves the full reply
// first, then this layer paces how it reaches the browser. A new question
// on the same connection cancels any in-flight reveal.
type WebSocketHandler struct {
	resolver      *Resolver
	limiter       *ratelimit.Limiter
	transcript    TranscriptLogger
	revealDelay   time.Duration
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a new chat WebSocket handler.
func NewWebSocketHandler(resolver *Resolver, limiter *ratelimit.Limiter, transcript TranscriptLogger, revealDelay time.Duration, allowedOrigin string, isDev bool) *WebSocketHandler {
	if transcript == nil {
		transcript = NoopTranscriptLogger{}
	}
	if revealDelay <= 0 {
		revealDelay = DefaultRevealDelay
	}
	return &WebSocketHandler{
		resolver:      resolver,
		limiter:       limiter,
		transcript:    transcript,
		revealDelay:   revealDelay,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// wsConn serializes writes to one connection; coder/websocket allows only a
// single concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(ctx context.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	slog.Info("Chat WebSocket connection", "user_id", userID, "ip", identity.IPFromRequest(r))

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn := &wsConn{conn: ws}

	var (
		revealMu     sync.Mutex
		cancelReveal context.CancelFunc
	)
	stopReveal := func() {
		revealMu.Lock()
		if cancelReveal != nil {
			cancelReveal()
			cancelReveal = nil
		}
		revealMu.Unlock()
	}
	defer stopReveal()

	for {
		var msg wsInbound
		if err := readJSON(ctx, ws, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled) {
				slog.Debug("Chat WebSocket closed", "user_id", userID)
				return
			}
			slog.Warn("Failed to read WebSocket message", "error", err, "user_id", userID)
			return
		}

		if msg.Type != "ask" || strings.TrimSpace(msg.Content) == "" {
			continue
		}

		// A new question supersedes any reveal still in flight.
		stopReveal()

		h.handleAsk(ctx, conn, userID, msg.Content, &revealMu, &cancelReveal)
	}
}

func (h *WebSocketHandler) handleAsk(ctx context.Context, conn *wsConn, userID, question string, revealMu *sync.Mutex, cancelReveal *context.CancelFunc) {
	decision, err := h.limiter.CheckLimit(ctx, userID)
	if err != nil {
		slog.Error("Rate limit check failed, allowing request", "error", err, "user_id", userID)
		decision = domain.RateDecision{CanAsk: true}
	}
	if !decision.CanAsk {
		if err := conn.writeJSON(ctx, wsOutbound{
			Type:            "limit",
			Content:         FormatRateLimitDenial(decision),
			RemainingDaily:  decision.RemainingDaily,
			RemainingHourly: decision.RemainingHourly,
		}); err != nil {
			slog.Debug("Failed to send limit frame", "error", err, "user_id", userID)
		}
		return
	}

	if err := h.limiter.RecordUsage(ctx, userID); err != nil {
		slog.Error("Failed to record usage", "error", err, "user_id", userID)
	}

	h.transcript.Log(TranscriptEvent{UserID: userID, Direction: "user", Content: question})

	reply, source := h.resolver.Resolve(ctx, question)
	msg := domain.NewAssistantMessage(reply)

	h.transcript.Log(TranscriptEvent{
		UserID:    userID,
		Direction: "assistant",
		Source:    string(source),
		Content:   reply,
	})

	revealCtx, cancel := context.WithCancel(ctx)
	revealMu.Lock()
	*cancelReveal = cancel
	revealMu.Unlock()

	go func() {
		defer cancel()
		err := RevealWords(revealCtx, reply, h.revealDelay, func(partial string) error {
			return conn.writeJSON(revealCtx, wsOutbound{Type: "partial", ID: msg.ID, Content: partial})
		})
		if err != nil {
			slog.Debug("Reveal interrupted", "error", err, "user_id", userID)
			return
		}
		if err := conn.writeJSON(revealCtx, wsOutbound{Type: "done", ID: msg.ID, Content: reply}); err != nil {
			slog.Debug("Failed to send done frame", "error", err, "user_id", userID)
		}
	}()
}

func readJSON(ctx context.Context, ws *websocket.Conn, v interface{}) error {
	_, data, err := ws.Read(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// checkOrigin validates the WebSocket origin against the configured
// frontend URL. Development mode accepts any origin.
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev || h.allowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	allowed, err := url.Parse(h.allowedOrigin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, allowed.Host)
}
