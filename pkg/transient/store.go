// Package transient provides the TTL key/value stores used to cache rendered embeds.
//
// The empty string is a valid value: the oEmbed fetcher stores it to remember failed lookups,
// so "found with an empty value" and "not found" are distinct results of Get.
package transient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrUnknownBackend is returned by New for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown transient backend")

// Store is a TTL key/value store. A zero or negative TTL stores the value without expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StatsProvider is implemented by stores that can report entry counts
type StatsProvider interface {
	GetStats(ctx context.Context) (map[string]any, error)
}

// CleanupProvider is implemented by stores that need expired entries removed explicitly
type CleanupProvider interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Config selects and configures a backend
type Config struct {
	Backend       string
	SQLitePath    string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// CleanupInterval is how often the memory backend purges expired items
	CleanupInterval time.Duration
}

// New creates the store named by config.Backend: memory, sqlite or redis
func New(ctx context.Context, config Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(config.Backend)) {
	case "", "memory":
		return NewMemory(config.CleanupInterval), nil
	case "sqlite":
		if config.SQLitePath == "" {
			return nil, errors.New("sqlite backend requires a database path")
		}
		return NewSQLite(ctx, config.SQLitePath)
	case "redis":
		return NewRedis(ctx, RedisConfig{
			Address:  config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
			Prefix:   config.RedisPrefix,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
}

// Close releases the store's resources when it holds any
func Close(store Store) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
