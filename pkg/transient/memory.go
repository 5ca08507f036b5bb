package transient

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = 10 * time.Minute

// Memory is a process-local store backed by go-cache
type Memory struct {
	cache *cache.Cache
}

var _ Store = (*Memory)(nil)

// NewMemory creates an in-memory store. Expired items are purged every cleanupInterval.
func NewMemory(cleanupInterval time.Duration) *Memory {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}
	return &Memory{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Get returns the value stored under key
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

// Set stores value under key for ttl
func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}

// Delete removes key
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.cache.Delete(key)
	return nil
}

// GetStats reports the number of held items, including expired ones not yet purged
func (m *Memory) GetStats(ctx context.Context) (map[string]any, error) {
	return map[string]any{
		"backend":       "memory",
		"total_entries": int64(m.cache.ItemCount()),
	}, nil
}

// CleanupExpired purges expired items immediately
func (m *Memory) CleanupExpired(ctx context.Context) (int64, error) {
	before := m.cache.ItemCount()
	m.cache.DeleteExpired()
	return int64(before - m.cache.ItemCount()), nil
}
