package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/reprotocol/refaq/internal/domain"
	"github.com/reprotocol/refaq/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		last_seen_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usage_limits (
		user_id TEXT PRIMARY KEY,
		daily_count INTEGER NOT NULL DEFAULT 0,
		hourly_count INTEGER NOT NULL DEFAULT 0,
		last_reset_date TEXT NOT NULL,
		last_reset_hour INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetUser retrieves a user by their user ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, last_seen_at, created_at, updated_at
		FROM users WHERE user_id = ?`

	row := s.db.QueryRowContext(ctx, query, userID)

	var user domain.User
	var lastSeen, createdAt, updatedAt int64

	err := row.Scan(&user.UserID, &user.Username, &lastSeen, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.LastSeenAt = time.Unix(lastSeen, 0)
	user.CreatedAt = time.Unix(createdAt, 0)
	user.UpdatedAt = time.Unix(updatedAt, 0)

	return &user, nil
}

// UpsertUser creates or updates a user record.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (user_id, username, last_seen_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		username = excluded.username,
		last_seen_at = excluded.last_seen_at,
		updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		user.UserID, user.Username,
		user.LastSeenAt.Unix(), user.CreatedAt.Unix(), user.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// UpdateLastSeen updates the last_seen_at timestamp for a user.
func (s *SQLiteStore) UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error {
	query := `UPDATE users SET last_seen_at = ?, updated_at = ? WHERE user_id = ?`
	result, err := s.db.ExecContext(ctx, query, lastSeen.Unix(), time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("update last_seen: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("UpdateLastSeen affected 0 rows", "user_id", userID)
	}

	return nil
}

// GetUsageCounters returns the stored question counters for a user. A
// missing or unreadable row reinitializes to zero counters anchored to the
// current day and hour, so a corrupt entry can never block the gate.
func (s *SQLiteStore) GetUsageCounters(ctx context.Context, userID string) (domain.UsageCounters, error) {
	query := `
		SELECT daily_count, hourly_count, last_reset_date, last_reset_hour
		FROM usage_limits WHERE user_id = ?`

	row := s.db.QueryRowContext(ctx, query, userID)

	var counters domain.UsageCounters
	err := row.Scan(&counters.DailyCount, &counters.HourlyCount,
		&counters.LastResetDate, &counters.LastResetHour)
	if err == sql.ErrNoRows {
		return domain.NewUsageCounters(time.Now()), nil
	}
	if err != nil {
		slog.Warn("Unreadable usage counters, reinitializing", "user_id", userID, "error", err)
		return domain.NewUsageCounters(time.Now()), nil
	}
	return counters, nil
}

// SaveUsageCounters persists the question counters for a user. A single
// retry covers transient SQLite lock conflicts under concurrent requests.
func (s *SQLiteStore) SaveUsageCounters(ctx context.Context, userID string, counters domain.UsageCounters) error {
	query := `
	INSERT INTO usage_limits (user_id, daily_count, hourly_count, last_reset_date, last_reset_hour, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		daily_count = excluded.daily_count,
		hourly_count = excluded.hourly_count,
		last_reset_date = excluded.last_reset_date,
		last_reset_hour = excluded.last_reset_hour,
		updated_at = excluded.updated_at`

	args := []interface{}{
		userID, counters.DailyCount, counters.HourlyCount,
		counters.LastResetDate, counters.LastResetHour, time.Now().Unix(),
	}

	_, err := s.db.ExecContext(ctx, query, args...)
	if shared.IsSQLiteConflictError(err) {
		slog.Warn("SQLite conflict saving usage counters, retrying once", "user_id", userID)
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("save usage counters: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
