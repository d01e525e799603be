// Package domain contains core domain types for the ReFAQ application.
package domain

import (
	"time"
)

// User represents an anonymous per-browser visitor of the chat widget.
type User struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
