package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a get-or-compute JSON cache over redis. A nil *Cache is valid and
// simply computes every time, so callers never have to branch on whether
// redis is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// NewWithClient is used by tests to plug in a miniredis-backed client.
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetOrCompute fills dest from the cached value under key, computing and
// storing it on a miss. Redis failures degrade to a plain compute.
func (c *Cache) GetOrCompute(ctx context.Context, key string, dest any, compute func() (any, error)) error {
	if c == nil || c.rdb == nil {
		v, err := compute()
		if err != nil {
			return err
		}
		return roundTrip(v, dest)
	}

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(raw, dest); err == nil {
			return nil
		}
	}

	v, err := compute()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("❌ Failed to cache %s: %v", key, err)
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate removes exact keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("❌ Failed to invalidate cache keys: %v", err)
	}
}

// InvalidatePrefix removes every key under the prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("❌ Failed to scan cache prefix %s: %v", prefix, err)
		return
	}
	if len(keys) > 0 {
		c.Invalidate(ctx, keys...)
	}
}

func roundTrip(v, dest any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
