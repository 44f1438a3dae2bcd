package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ResultCache is a byte-payload cache for computed projections. Projections
// are pure functions of their input, so entries never need invalidation,
// only expiry.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// RedisResultCache caches results in Redis.
type RedisResultCache struct {
	client *redis.Client
}

// NewRedisResultCache connects a cache to the given address.
func NewRedisResultCache(addr string) *RedisResultCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisResultCache{client: rdb}
}

// Ping verifies the connection; used once at startup to decide between this
// cache and the in-memory fallback.
func (c *RedisResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisResultCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryResultCache is the in-process fallback cache. Expired entries are
// dropped lazily on read.
type MemoryResultCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryResultCache creates an empty in-memory cache.
func NewMemoryResultCache() *MemoryResultCache {
	return &MemoryResultCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

func (c *MemoryResultCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{payload: payload}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// InputDigest derives a stable cache key from any marshalable value. Struct
// field order makes the JSON canonical, so equal inputs always share a key.
// Returns "" when the value cannot be marshaled.
func InputDigest(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
