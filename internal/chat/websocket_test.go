package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/reprotocol/refaq/internal/identity"
	"github.com/reprotocol/refaq/internal/ratelimit"
)

func newWSTestServer(t *testing.T, hourlyLimit int) *httptest.Server {
	t.Helper()

	limiter := ratelimit.New(newMemCounterStore(), ratelimit.Config{DailyLimit: 100, HourlyLimit: hourlyLimit})
	h := NewWebSocketHandler(NewResolver(nil), limiter, nil, time.Millisecond, "", true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(identity.WithUserID(r.Context(), "anon_ws"))
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func dialWS(t *testing.T, ctx context.Context, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Failed to dial WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func sendAsk(t *testing.T, ctx context.Context, conn *websocket.Conn, content string) {
	t.Helper()

	data, _ := json.Marshal(wsInbound{Type: "ask", Content: content})
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("Failed to send ask: %v", err)
	}
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) wsOutbound {
	t.Helper()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Failed to read frame: %v", err)
	}
	var frame wsOutbound
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("Failed to parse frame: %v", err)
	}
	return frame
}

func TestWebSocketStreamsReply(t *testing.T) {
	server := newWSTestServer(t, 100)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, server)
	sendAsk(t, ctx, conn, "what is re protocol")

	var partials []wsOutbound
	var done wsOutbound
	for {
		frame := readFrame(t, ctx, conn)
		if frame.Type == "done" {
			done = frame
			break
		}
		if frame.Type != "partial" {
			t.Fatalf("unexpected frame type %q", frame.Type)
		}
		partials = append(partials, frame)
	}

	if len(partials) < 2 {
		t.Fatalf("expected a multi-word reveal, got %d partials", len(partials))
	}
	for i := 1; i < len(partials); i++ {
		if !strings.HasPrefix(partials[i].Content, partials[i-1].Content) {
			t.Errorf("partial %d is not a superset of the previous one:\n%q\n%q",
				i, partials[i-1].Content, partials[i].Content)
		}
		if partials[i].ID != partials[0].ID {
			t.Errorf("partial %d carries a different message ID", i)
		}
	}

	last := partials[len(partials)-1]
	if done.Content != last.Content {
		t.Errorf("done frame content %q differs from final partial %q", done.Content, last.Content)
	}
	if done.ID != last.ID {
		t.Error("done frame should carry the same message ID as the partials")
	}
	if !strings.Contains(done.Content, "Re Protocol") {
		t.Errorf("expected the protocol overview answer, got %q", done.Content)
	}
}

func TestWebSocketRateLimit(t *testing.T) {
	server := newWSTestServer(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, server)

	// First question consumes the single hourly slot.
	sendAsk(t, ctx, conn, "hello there")
	for {
		if frame := readFrame(t, ctx, conn); frame.Type == "done" {
			break
		}
	}

	sendAsk(t, ctx, conn, "hello again")
	frame := readFrame(t, ctx, conn)
	if frame.Type != "limit" {
		t.Fatalf("frame type = %q, want limit", frame.Type)
	}
	if !strings.Contains(frame.Content, "Rate Limit Reached") {
		t.Errorf("limit frame missing denial banner, got %q", frame.Content)
	}
}

func TestWebSocketIgnoresBlankAsk(t *testing.T) {
	server := newWSTestServer(t, 100)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, server)
	sendAsk(t, ctx, conn, "   ")
	sendAsk(t, ctx, conn, "what is re protocol")

	// Only the real question produces frames.
	frame := readFrame(t, ctx, conn)
	if frame.Type != "partial" && frame.Type != "done" {
		t.Errorf("frame type = %q, want a reveal frame", frame.Type)
	}
}

func TestWebSocketRejectsMissingIdentity(t *testing.T) {
	limiter := ratelimit.New(newMemCounterStore(), ratelimit.Config{DailyLimit: 100, HourlyLimit: 100})
	h := NewWebSocketHandler(NewResolver(nil), limiter, nil, time.Millisecond, "", true)
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.Dial(ctx, url, nil)
	if err == nil {
		conn.Close(websocket.StatusNormalClosure, "")
		t.Fatal("expected handshake failure without identity")
	}
	if resp != nil && resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("handshake status = %d, want 401", resp.StatusCode)
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name          string
		allowedOrigin string
		isDev         bool
		origin        string
		want          bool
	}{
		{name: "Dev mode allows everything", isDev: true, allowedOrigin: "https://re.xyz", origin: "https://evil.example", want: true},
		{name: "No configured origin allows everything", origin: "https://anywhere.example", want: true},
		{name: "Matching origin", allowedOrigin: "https://re.xyz", origin: "https://re.xyz", want: true},
		{name: "Host match ignores scheme", allowedOrigin: "https://re.xyz", origin: "http://re.xyz", want: true},
		{name: "Mismatched origin", allowedOrigin: "https://re.xyz", origin: "https://evil.example", want: false},
		{name: "Missing origin header", allowedOrigin: "https://re.xyz", origin: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &WebSocketHandler{allowedOrigin: tt.allowedOrigin, isDev: tt.isDev}
			r := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := h.checkOrigin(r); got != tt.want {
				t.Errorf("checkOrigin = %v, want %v", got, tt.want)
			}
		})
	}
}
