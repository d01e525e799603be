package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRevealWordsCumulativePrefixes(t *testing.T) {
	var partials []string
	err := RevealWords(context.Background(), "one two three", 0, func(partial string) error {
		partials = append(partials, partial)
		return nil
	})
	if err != nil {
		t.Fatalf("RevealWords failed: %v", err)
	}

	want := []string{"one", "one two", "one two three"}
	if len(partials) != len(want) {
		t.Fatalf("got %d partials %v, want %d", len(partials), partials, len(want))
	}
	for i := range want {
		if partials[i] != want[i] {
			t.Errorf("partial %d = %q, want %q", i, partials[i], want[i])
		}
	}
}

func TestRevealWordsPreservesNewlines(t *testing.T) {
	text := "line one\nline two"
	var last string
	err := RevealWords(context.Background(), text, 0, func(partial string) error {
		last = partial
		return nil
	})
	if err != nil {
		t.Fatalf("RevealWords failed: %v", err)
	}
	if last != text {
		t.Errorf("final partial = %q, want full text %q", last, text)
	}
	if !strings.Contains(last, "\n") {
		t.Error("newline inside the reply must survive the reveal")
	}
}

func TestRevealWordsSingleWord(t *testing.T) {
	var partials []string
	err := RevealWords(context.Background(), "hello", 50*time.Millisecond, func(partial string) error {
		partials = append(partials, partial)
		return nil
	})
	if err != nil {
		t.Fatalf("RevealWords failed: %v", err)
	}
	if len(partials) != 1 || partials[0] != "hello" {
		t.Errorf("partials = %v, want [hello]", partials)
	}
}

func TestRevealWordsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var count int
	err := RevealWords(ctx, "a b c d e f g h", 10*time.Millisecond, func(partial string) error {
		count++
		if count == 2 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if count >= 8 {
		t.Errorf("reveal emitted all %d words after cancellation", count)
	}
}

func TestRevealWordsStopsOnEmitError(t *testing.T) {
	sentinel := errors.New("connection closed")

	var count int
	err := RevealWords(context.Background(), "a b c", 0, func(partial string) error {
		count++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want emit error", err)
	}
	if count != 1 {
		t.Errorf("emit called %d times after failing, want 1", count)
	}
}

func TestRevealWordsPacing(t *testing.T) {
	const delay = 20 * time.Millisecond
	start := time.Now()
	err := RevealWords(context.Background(), "a b c d", delay, func(string) error { return nil })
	if err != nil {
		t.Fatalf("RevealWords failed: %v", err)
	}
	// Three inter-word gaps at 20ms each.
	if elapsed := time.Since(start); elapsed < 3*delay {
		t.Errorf("reveal finished in %v, want at least %v", elapsed, 3*delay)
	}
}
