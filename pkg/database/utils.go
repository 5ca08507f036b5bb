package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupDatabase copies the database file next to itself with a timestamp suffix
// and returns the backup path
func BackupDatabase(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database file does not exist: %s", dbPath)
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + "_backup_" + timestamp + filepath.Ext(dbPath)

	input, err := os.ReadFile(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to read database file: %w", err)
	}

	if err := os.WriteFile(backupPath, input, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// DatabaseExists checks if a database file exists
func DatabaseExists(dbPath string) bool {
	_, err := os.Stat(dbPath)
	return !os.IsNotExist(err)
}

// GetDatabaseSize returns the size of the database file in bytes
func GetDatabaseSize(dbPath string) (int64, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get database file info: %w", err)
	}

	return info.Size(), nil
}

// VacuumDatabase runs VACUUM to reclaim space after expired rows are removed
func VacuumDatabase(ctx context.Context, db *Database) error {
	if _, err := db.DB().ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}

// GetDatabaseInfo returns the sqlite version, file size and table count
func GetDatabaseInfo(ctx context.Context, db *Database) (map[string]any, error) {
	info := make(map[string]any)

	var version string
	if err := db.DB().QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to get SQLite version: %w", err)
	}
	info["sqlite_version"] = version

	if size, err := GetDatabaseSize(db.Path()); err == nil {
		info["file_size_bytes"] = size
	}

	var tableCount int
	if err := db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&tableCount); err != nil {
		return nil, fmt.Errorf("failed to get table count: %w", err)
	}
	info["table_count"] = tableCount

	return info, nil
}
