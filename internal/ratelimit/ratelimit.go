// Package ratelimit gates chat requests against per-user daily and hourly
// question quotas backed by persistent counters.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reprotocol/refaq/internal/domain"
)

// CounterStore persists usage counters per user. The SQLite repository
// implements this; tests use an in-memory store.
type CounterStore interface {
	// GetUsageCounters returns the stored counters for a user, or freshly
	// initialized counters when none exist.
	GetUsageCounters(ctx context.Context, userID string) (domain.UsageCounters, error)

	// SaveUsageCounters writes the counters for a user.
	SaveUsageCounters(ctx context.Context, userID string, counters domain.UsageCounters) error
}

// Config holds the operator-set question quotas.
type Config struct {
	DailyLimit  int
	HourlyLimit int
}

// Limiter enforces daily and hourly question quotas. The read-modify-write
// on stored counters is serialized with a mutex so concurrent requests from
// the same browser cannot lose updates.
type Limiter struct {
	mu    sync.Mutex
	store CounterStore
	cfg   Config
	now   func() time.Time
}

// New creates a Limiter over the given counter store.
func New(store CounterStore, cfg Config) *Limiter {
	return &Limiter{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// CheckLimit reports whether the user may ask another question. It never
// mutates stored counts beyond window rollover normalization.
func (l *Limiter) CheckLimit(ctx context.Context, userID string) (domain.RateDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	counters, err := l.store.GetUsageCounters(ctx, userID)
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("load usage counters: %w", err)
	}
	counters.Rollover(now)

	if counters.DailyCount >= l.cfg.DailyLimit {
		return domain.RateDecision{
			CanAsk:          false,
			RemainingDaily:  0,
			RemainingHourly: remaining(l.cfg.HourlyLimit, counters.HourlyCount),
			Message: fmt.Sprintf(
				"You've reached your daily limit of %d questions. Please come back tomorrow to continue asking questions about Re Protocol!",
				l.cfg.DailyLimit),
		}, nil
	}

	if counters.HourlyCount >= l.cfg.HourlyLimit {
		nextHour := now.Add(time.Hour)
		return domain.RateDecision{
			CanAsk:          false,
			RemainingDaily:  remaining(l.cfg.DailyLimit, counters.DailyCount),
			RemainingHourly: 0,
			Message: fmt.Sprintf(
				"You've reached your hourly limit of %d questions. Please wait until %d:00 to ask more questions.",
				l.cfg.HourlyLimit, nextHour.Hour()),
		}, nil
	}

	return domain.RateDecision{
		CanAsk:          true,
		RemainingDaily:  remaining(l.cfg.DailyLimit, counters.DailyCount),
		RemainingHourly: remaining(l.cfg.HourlyLimit, counters.HourlyCount),
	}, nil
}

// RecordUsage increments both window counters for the user and persists them.
func (l *Limiter) RecordUsage(ctx context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	counters, err := l.store.GetUsageCounters(ctx, userID)
	if err != nil {
		return fmt.Errorf("load usage counters: %w", err)
	}
	counters.Rollover(l.now())
	counters.DailyCount++
	counters.HourlyCount++

	if err := l.store.SaveUsageCounters(ctx, userID, counters); err != nil {
		return fmt.Errorf("save usage counters: %w", err)
	}
	return nil
}

func remaining(limit, count int) int {
	if count >= limit {
		return 0
	}
	return limit - count
}
