package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:active:"

// ActivityCache keeps a TTL-bound marker per active session so hot-path
// requests can skip the database lookup. The session store remains the
// source of truth; a cache miss only means "go ask the store".
type ActivityCache struct {
	client *redis.Client
}

func NewActivityCache(client *redis.Client) *ActivityCache {
	return &ActivityCache{client: client}
}

func (c *ActivityCache) MarkActive(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err()
}

func (c *ActivityCache) IsActive(ctx context.Context, tokenID string) (bool, error) {
	_, err := c.client.Get(ctx, keyPrefix+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *ActivityCache) Invalidate(ctx context.Context, tokenID string) error {
	return c.client.Del(ctx, keyPrefix+tokenID).Err()
}
