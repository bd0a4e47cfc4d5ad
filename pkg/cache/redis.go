package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultExpiration = 30 * time.Minute

type RedisViewCache struct {
	Cache *cache.Cache[string]
}

func NewRedisViewCache(client *redis.Client, expiration time.Duration) *RedisViewCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &RedisViewCache{
		Cache: cache.New[string](redisStore),
	}
}

func (c *RedisViewCache) GetTripView(ctx context.Context, tripID string) (*ctdf.EnrichedTripView, error) {
	var view *ctdf.EnrichedTripView
	if err := c.get(ctx, tripViewKey(tripID), &view); err != nil {
		return nil, err
	}

	return view, nil
}

func (c *RedisViewCache) SetTripView(ctx context.Context, view ctdf.EnrichedTripView) error {
	return c.set(ctx, tripViewKey(view.ID), view)
}

func (c *RedisViewCache) GetPNRStatus(ctx context.Context, pnr string) (*ctdf.PNRStatus, error) {
	var status *ctdf.PNRStatus
	if err := c.get(ctx, pnrStatusKey(pnr), &status); err != nil {
		return nil, err
	}

	return status, nil
}

func (c *RedisViewCache) SetPNRStatus(ctx context.Context, pnr string, status ctdf.PNRStatus) error {
	return c.set(ctx, pnrStatusKey(pnr), status)
}

// get leaves out untouched on a cache miss.
func (c *RedisViewCache) get(ctx context.Context, key string, out interface{}) error {
	value, err := c.Cache.Get(ctx, key)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Cache miss")
		return nil
	}

	return json.Unmarshal([]byte(value), out)
}

func (c *RedisViewCache) set(ctx context.Context, key string, value interface{}) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(valueJSON))
}
