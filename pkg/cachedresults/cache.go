package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Marker stored for lookups that are known to have no result
const notAvailable = "N/A"

// Cache memoises lookup results as JSON. A nil *Cache is valid and caches nothing.
type Cache struct {
	Cache *cache.Cache[string]
}

func New(client *redis.Client, expiration time.Duration) *Cache {
	if client == nil {
		return nil
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

// Get loads the cached value for key into value. found is false on a miss;
// absent is true when a negative result was cached.
func (c *Cache) Get(ctx context.Context, key string, value any) (found bool, absent bool) {
	if c == nil {
		return false, false
	}

	cacheValue, err := c.Cache.Get(ctx, key)
	if err != nil {
		return false, false
	}

	if cacheValue == notAvailable {
		return true, true
	}

	if err := json.Unmarshal([]byte(cacheValue), value); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Ignoring undecodable cache entry")
		return false, false
	}

	return true, false
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}

	if err := c.Cache.Set(ctx, key, string(valueJSON)); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}

// SetAbsent records that key has no result
func (c *Cache) SetAbsent(ctx context.Context, key string) {
	if c == nil {
		return
	}

	if err := c.Cache.Set(ctx, key, notAvailable); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}
