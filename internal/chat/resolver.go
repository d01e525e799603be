package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reprotocol/refaq/internal/llm"
)

// Completer is the remote completion boundary consumed by the resolver.
// *llm.Client implements it.
type Completer interface {
	Complete(ctx context.Context, userText string) (string, error)
}

// Source tags where a resolved reply came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Resolver turns free-form user text into a displayable answer: one remote
// completion attempt, then deterministic local resolution on any failure.
type Resolver struct {
	remote Completer
}

// NewResolver creates a resolver. remote may be nil, in which case every
// turn resolves locally.
func NewResolver(remote Completer) *Resolver {
	return &Resolver{remote: remote}
}

// Resolve produces the reply text for one user turn. It never returns an
// error and never returns an empty string: remote failures of any kind
// (missing key, network, bad status, malformed payload, empty choices,
// timeout) are downgraded to local resolution.
func (r *Resolver) Resolve(ctx context.Context, userText string) (string, Source) {
	if r.remote != nil {
		reply, err := r.remote.Complete(ctx, userText)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply, SourceRemote
		}
		if err != nil {
			slog.Debug("Remote completion failed, using local resolution",
				"reason", llm.FailureCode(err), "error", err)
		}
	}
	return r.resolveLocal(userText), SourceLocal
}

// resolveLocal runs the rule-based pipeline: classify, then either the
// yield calculator or the canned template for the intent.
func (r *Resolver) resolveLocal(userText string) string {
	intent := ClassifyIntent(userText)
	slog.Debug("Classified question", "intent", intent.String())

	if intent == IntentYieldCalculation {
		return CalculateYield(userText)
	}
	return ResponseFor(intent)
}
