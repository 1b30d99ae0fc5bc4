package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// ResponseCache stores serialized responses for idempotent replay.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisResponseCache backs the idempotency middleware with Redis.
type RedisResponseCache struct {
	client *redis.Client
}

// NewRedisResponseCache creates a Redis-backed response cache.
func NewRedisResponseCache(client *redis.Client) *RedisResponseCache {
	return &RedisResponseCache{client: client}
}

func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *RedisResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// MemoryResponseCache is a process-local response cache, used when Redis
// is disabled and in tests.
type MemoryResponseCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryResponseCache creates an in-memory response cache.
func NewMemoryResponseCache() *MemoryResponseCache {
	return &MemoryResponseCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryResponseCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

func (c *MemoryResponseCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}
