package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single turn in the widget conversation. Messages are
// immutable once displayed; the frontend may reveal the text progressively
// but never changes the payload it received.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAssistantMessage wraps resolved reply text in a ChatMessage.
func NewAssistantMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessage wraps user input in a ChatMessage.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    true,
		Timestamp: time.Now().UTC(),
	}
}
