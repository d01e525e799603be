// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/reprotocol/refaq/internal/domain"
)

// Repository defines the interface for persisting anonymous users and their
// usage counters.
type Repository interface {
	// GetUser retrieves a user by their user ID. Returns (nil, nil) when the
	// user does not exist.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// GetUsageCounters returns the stored question counters for a user.
	// A missing or unreadable row yields zero counters for the current
	// day and hour.
	GetUsageCounters(ctx context.Context, userID string) (domain.UsageCounters, error)

	// SaveUsageCounters persists the question counters for a user.
	SaveUsageCounters(ctx context.Context, userID string, counters domain.UsageCounters) error

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
