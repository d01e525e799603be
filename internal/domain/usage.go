package domain

import (
	"time"
)

// UsageDateFormat is the calendar-day identifier stored in UsageCounters.
const UsageDateFormat = "2006-01-02"

// UsageCounters tracks how many questions a user has asked in the current
// day and hour windows. Counters are never destroyed, only reset when the
// wall clock rolls past the stored day or hour.
type UsageCounters struct {
	DailyCount    int    `json:"daily_count"`
	HourlyCount   int    `json:"hourly_count"`
	LastResetDate string `json:"last_reset_date"`
	LastResetHour int    `json:"last_reset_hour"`
}

// NewUsageCounters returns zeroed counters anchored to the given time.
func NewUsageCounters(now time.Time) UsageCounters {
	return UsageCounters{
		LastResetDate: now.Format(UsageDateFormat),
		LastResetHour: now.Hour(),
	}
}

// Rollover normalizes stale counters against the current time: a new
// calendar day zeroes the daily count, a new hour zeroes the hourly count.
// It must run before every read and every write of the counters.
func (c *UsageCounters) Rollover(now time.Time) {
	if today := now.Format(UsageDateFormat); c.LastResetDate != today {
		c.DailyCount = 0
		c.LastResetDate = today
	}
	if hour := now.Hour(); c.LastResetHour != hour {
		c.HourlyCount = 0
		c.LastResetHour = hour
	}
}

// RateDecision is the outcome of a rate-limit check for one request.
type RateDecision struct {
	CanAsk          bool   `json:"can_ask"`
	RemainingDaily  int    `json:"remaining_daily"`
	RemainingHourly int    `json:"remaining_hourly"`
	Message         string `json:"message,omitempty"`
}
