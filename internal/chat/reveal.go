package chat

import (
	"context"
	"strings"
	"time"
)

// DefaultRevealDelay is the per-word delay used by the widget's typing
// animation.
const DefaultRevealDelay = 200 * time.Millisecond

// RevealWords emits the text word by word as growing prefixes, waiting delay
// between words. emit receives the cumulative text after each word. The
// reveal stops when ctx is cancelled or emit returns an error, so a new user
// submission can cut off an in-flight animation without interleaving output.
//
// This is a display-layer concern: the pipeline always resolves the full
// reply first and RevealWords only paces how it is shown.
func RevealWords(ctx context.Context, text string, delay time.Duration, emit func(partial string) error) error {
	// Split on single spaces only: newlines inside the reply are part of its
	// formatting and must survive the reveal.
	words := strings.Split(text, " ")
	if len(words) == 0 {
		return emit(text)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	var b strings.Builder
	for i, word := range words {
		if i > 0 {
			b.WriteByte(' ')
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		b.WriteString(word)
		if err := emit(b.String()); err != nil {
			return err
		}
	}
	return nil
}
