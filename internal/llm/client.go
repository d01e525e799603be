// Package llm provides the remote chat-completion client used by the
// response resolver. The endpoint speaks the OpenAI chat-completions wire
// format; every failure mode maps to a typed ClientError so callers can
// fall back to local resolution without inspecting transport details.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.x.ai"
	completionsPath = "/v1/chat/completions"
	modelsPath      = "/v1/models"
)

// systemPrompt keeps the model on Re Protocol topics and short answers.
const systemPrompt = `You are a Re Protocol expert and calculator. Keep responses SHORT and focused.

RULES:
- ONLY English responses
- ONLY Re Protocol topics (reUSD, reUSDe, yields, security, getting started)
- MAX 2-3 sentences per response
- If off-topic: "I only help with Re Protocol questions."
- ONLY add links when user asks for "more details", "documentation", "how to", or "getting started"
- Links to add when appropriate:
  * For general info: "For more details, visit https://re.xyz/"
  * For technical docs: "For detailed information, check https://docs.re.xyz/"

CALCULATOR FEATURES:
- I can calculate yields, returns, and projections for reUSD and reUSDe
- reUSD (Basis-Plus): 6%-9%+ APY (Delta-neutral ETH basis + T-bills + 250bps spread)
- reUSDe (Insurance Alpha): 16%-25% APY (Insurance underwriting yields)
- I can help with deposit calculations, APY estimates, and risk assessments
- I can compare different strategies and show potential earnings
- Ask me: "Calculate my yield for $1000 in reUSDe" or "What's the difference between reUSD and reUSDe returns?"

Be concise and helpful.`

// Config holds the remote completion client configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the reference deployment settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		Model:       "grok-3-mini",
		MaxTokens:   150,
		Temperature: 0.7,
		Timeout:     10 * time.Second,
	}
}

// Client is a thin adapter over the chat-completions HTTP endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a completion client. A client without an API key is valid;
// every Complete call on it fails with CodeNotConfigured so the resolver
// degrades to local responses.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the user text with the fixed system prompt and returns the
// first candidate completion. One attempt, no retries.
func (c *Client) Complete(ctx context.Context, userText string) (string, error) {
	if !c.Configured() {
		return "", newClientError(CodeNotConfigured, "completion API key not configured", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so connections can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return "", newClientError(CodeProtocol,
			fmt.Sprintf("completion API returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), nil)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", newClientError(CodeProtocol, "malformed completion payload", err)
	}

	if len(parsed.Choices) == 0 {
		return "", newClientError(CodeEmptyResponse, "completion API returned no choices", nil)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", newClientError(CodeEmptyResponse, "completion API returned an empty choice", nil)
	}
	return content, nil
}

// Heartbeat hits the models-listing endpoint. It exists only for startup
// diagnostics; a failure must not alter user-facing behavior.
func (c *Client) Heartbeat(ctx context.Context) error {
	if !c.Configured() {
		return newClientError(CodeNotConfigured, "completion API key not configured", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+modelsPath, http.NoBody)
	if err != nil {
		return fmt.Errorf("build heartbeat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newClientError(CodeProtocol,
			fmt.Sprintf("heartbeat returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), nil)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newClientError(CodeTimeout, "completion request timed out or was cancelled", err)
	}
	// http.Client wraps its own timeout in a *url.Error with Timeout()=true.
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return newClientError(CodeTimeout, "completion request timed out", err)
	}
	return newClientError(CodeNetwork, "completion API unreachable", err)
}
