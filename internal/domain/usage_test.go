package domain

import (
	"testing"
	"time"
)

func TestRollover(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		now        time.Time
		wantDaily  int
		wantHourly int
	}{
		{
			name:       "Same hour keeps both counts",
			now:        base.Add(30 * time.Minute),
			wantDaily:  7,
			wantHourly: 3,
		},
		{
			name:       "New hour zeroes hourly only",
			now:        base.Add(time.Hour),
			wantDaily:  7,
			wantHourly: 0,
		},
		{
			name:       "New day zeroes daily",
			now:        base.Add(24 * time.Hour),
			wantDaily:  0,
			wantHourly: 3,
		},
		{
			name:       "New day and hour zeroes both",
			now:        base.Add(25 * time.Hour),
			wantDaily:  0,
			wantHourly: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counters := UsageCounters{
				DailyCount:    7,
				HourlyCount:   3,
				LastResetDate: base.Format(UsageDateFormat),
				LastResetHour: base.Hour(),
			}
			counters.Rollover(tt.now)

			if counters.DailyCount != tt.wantDaily {
				t.Errorf("daily count = %d, want %d", counters.DailyCount, tt.wantDaily)
			}
			if counters.HourlyCount != tt.wantHourly {
				t.Errorf("hourly count = %d, want %d", counters.HourlyCount, tt.wantHourly)
			}
			if counters.LastResetDate != tt.now.Format(UsageDateFormat) {
				t.Errorf("last_reset_date = %q, want %q", counters.LastResetDate, tt.now.Format(UsageDateFormat))
			}
			if counters.LastResetHour != tt.now.Hour() {
				t.Errorf("last_reset_hour = %d, want %d", counters.LastResetHour, tt.now.Hour())
			}
		})
	}
}

func TestRolloverIsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	counters := UsageCounters{
		DailyCount:    5,
		HourlyCount:   2,
		LastResetDate: "2025-06-01",
		LastResetHour: 10,
	}

	counters.Rollover(now)
	snapshot := counters
	counters.Rollover(now)

	if counters != snapshot {
		t.Errorf("second rollover changed counters: %+v vs %+v", counters, snapshot)
	}
}

func TestNewUsageCounters(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	c := NewUsageCounters(now)

	if c.DailyCount != 0 || c.HourlyCount != 0 {
		t.Errorf("fresh counters should be zeroed, got %+v", c)
	}
	if c.LastResetDate != "2025-06-01" {
		t.Errorf("last_reset_date = %q, want 2025-06-01", c.LastResetDate)
	}
	if c.LastResetHour != 14 {
		t.Errorf("last_reset_hour = %d, want 14", c.LastResetHour)
	}
}
