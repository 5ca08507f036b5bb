package transient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the redis backend
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "embed-forge:"
	Prefix string
}

// Redis is a shared store backed by a redis server
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

// NewRedis connects to redis and verifies the connection
func NewRedis(ctx context.Context, config RedisConfig) (*Redis, error) {
	if config.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Address, err)
	}

	return &Redis{client: client, prefix: config.Prefix}, nil
}

// Get returns the value stored under key
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get transient %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key for ttl. Redis treats a zero expiration as no expiry.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set transient %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete transient %s: %w", key, err)
	}
	return nil
}

// GetStats reports the number of keys in the selected database
func (r *Redis) GetStats(ctx context.Context) (map[string]any, error) {
	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis db size: %w", err)
	}
	return map[string]any{"backend": "redis", "total_entries": size}, nil
}

// Close closes the redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
