package transient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/embed-forge/pkg/database"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS transients (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transients_expires ON transients(expires_at);
`

// SQLite is a persistent store in a sqlite table. Expiry times are unix milliseconds,
// NULL meaning the entry never expires.
type SQLite struct {
	db  *database.Database
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens the database at path and creates the transients table
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	s := &SQLite{db: db, now: time.Now}
	if err := db.ExecuteSchema(ctx, sqliteSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to create transients table: %w", err)
	}

	slog.Debug("Transient store ready", "backend", "sqlite", "path", path)
	return s, nil
}

// Get returns the unexpired value stored under key
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.DB().QueryRowContext(ctx, `
		SELECT value FROM transients
		WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)
	`, key, s.now().UnixMilli()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get transient %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for ttl, replacing any previous entry
func (s *SQLite) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt any
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixMilli()
	}

	_, err := s.db.DB().ExecContext(ctx, `
		INSERT INTO transients (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set transient %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.DB().ExecContext(ctx, `DELETE FROM transients WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete transient %s: %w", key, err)
	}
	return nil
}

// CleanupExpired removes expired rows and returns how many were deleted
func (s *SQLite) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := s.db.DB().ExecContext(ctx,
		`DELETE FROM transients WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired transients: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Debug("Cleaned up expired transients", "count", rowsAffected)
	}
	return rowsAffected, nil
}

// GetStats returns entry counts and failure markers
func (s *SQLite) GetStats(ctx context.Context) (map[string]any, error) {
	now := s.now().UnixMilli()
	stats := map[string]any{"backend": "sqlite", "path": s.db.Path()}

	queries := []struct {
		name  string
		query string
		args  []any
	}{
		{"total_entries", `SELECT COUNT(*) FROM transients`, nil},
		{"valid_entries", `SELECT COUNT(*) FROM transients WHERE expires_at IS NULL OR expires_at > ?`, []any{now}},
		{"expired_entries", `SELECT COUNT(*) FROM transients WHERE expires_at IS NOT NULL AND expires_at <= ?`, []any{now}},
		{"failure_markers", `SELECT COUNT(*) FROM transients WHERE value = '' AND (expires_at IS NULL OR expires_at > ?)`, []any{now}},
	}

	for _, q := range queries {
		var count int64
		if err := s.db.DB().QueryRowContext(ctx, q.query, q.args...).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", q.name, err)
		}
		stats[q.name] = count
	}

	if info, err := database.GetDatabaseInfo(ctx, s.db); err == nil {
		for k, v := range info {
			stats[k] = v
		}
	}
	if size, err := database.GetDatabaseSize(s.db.Path()); err == nil {
		stats["size_bytes"] = size
	}
	return stats, nil
}

// Backup copies the database file next to itself and returns the copy's path
func (s *SQLite) Backup() (string, error) {
	if !database.DatabaseExists(s.db.Path()) {
		return "", fmt.Errorf("database file %s does not exist", s.db.Path())
	}
	return database.BackupDatabase(s.db.Path())
}

// Vacuum reclaims space in the database file
func (s *SQLite) Vacuum(ctx context.Context) error {
	return database.VacuumDatabase(ctx, s.db)
}

// Path returns the database file path
func (s *SQLite) Path() string {
	return s.db.Path()
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}
