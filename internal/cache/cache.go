package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe redis wrapper. Every method treats a down or absent
// redis as a cache miss, and a nil *Client behaves the same way, so callers
// never branch on cache availability. Report caching degrades to recomputing
// and refresh tokens degrade to not-found, forcing a fresh login.
type Client struct {
	rdb *redis.Client
}

// New connects to redis at addr. The connection is lazy; use Ping to verify it.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping checks the redis connection.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get returns the cached value, or nil when the key is missing or redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil
	}
	return data, nil
}

// Set stores a value with a TTL. Redis errors are swallowed.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	c.rdb.Set(ctx, key, value, ttl)
	return nil
}

// Delete drops a key. Redis errors are swallowed.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	c.rdb.Del(ctx, key)
	return nil
}
