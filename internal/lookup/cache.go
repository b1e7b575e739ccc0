package lookup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheTTL = 24 * time.Hour

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// Cache is a best-effort JSON cache in front of the external lookup
// providers. A broken redis never fails a lookup, only slows it down.
type Cache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCache(client *redis.Client, log zerolog.Logger) *Cache {
	return &Cache{client: client, log: log}
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("lookup cache read failed")
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, b, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("lookup cache write failed")
	}
}
