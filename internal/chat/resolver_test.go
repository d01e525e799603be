package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubCompleter scripts the remote boundary for resolver tests.
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestResolvePrefersRemote(t *testing.T) {
	remote := &stubCompleter{reply: "Re Protocol is a reinsurance protocol."}
	r := NewResolver(remote)

	got, source := r.Resolve(context.Background(), "what is re protocol")
	if got != remote.reply {
		t.Errorf("reply = %q, want remote reply", got)
	}
	if source != SourceRemote {
		t.Errorf("source = %v, want %v", source, SourceRemote)
	}
	if remote.calls != 1 {
		t.Errorf("remote called %d times, want 1", remote.calls)
	}
}

func TestResolveFallsBackOnError(t *testing.T) {
	tests := []struct {
		name   string
		remote *stubCompleter
	}{
		{
			name:   "Remote error",
			remote: &stubCompleter{err: errors.New("connection refused")},
		},
		{
			name:   "Empty remote reply",
			remote: &stubCompleter{reply: ""},
		},
		{
			name:   "Whitespace-only remote reply",
			remote: &stubCompleter{reply: "   \n  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.remote)
			got, source := r.Resolve(context.Background(), "what is re protocol")
			if source != SourceLocal {
				t.Errorf("source = %v, want %v", source, SourceLocal)
			}
			if strings.TrimSpace(got) == "" {
				t.Error("local fallback must never be empty")
			}
			if !strings.Contains(got, "Re Protocol") {
				t.Errorf("expected the protocol overview answer, got %q", got)
			}
		})
	}
}

func TestResolveWithoutRemote(t *testing.T) {
	r := NewResolver(nil)

	got, source := r.Resolve(context.Background(), "what is re protocol")
	if source != SourceLocal {
		t.Errorf("source = %v, want %v", source, SourceLocal)
	}
	if got == "" {
		t.Error("local resolution must never be empty")
	}
}

func TestResolveDelegatesYieldQuestions(t *testing.T) {
	r := NewResolver(nil)

	got, _ := r.Resolve(context.Background(), "calculate my yield for $1000")
	if !strings.Contains(got, "$60.00 - $90.00") {
		t.Errorf("expected a yield projection, got:\n%s", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	failing := &stubCompleter{err: errors.New("boom")}
	r := NewResolver(failing)

	inputs := []string{
		"",
		"hi",
		"asdfqwerty",
		"bitcoin price today",
		"calculate my yield",
		"who can participate?",
	}
	for _, input := range inputs {
		got, source := r.Resolve(context.Background(), input)
		if strings.TrimSpace(got) == "" {
			t.Errorf("Resolve(%q) returned empty reply", input)
		}
		if source != SourceLocal {
			t.Errorf("Resolve(%q) source = %v, want local", input, source)
		}
	}
}
