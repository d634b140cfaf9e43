// internal/search/rediscache.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/models"
)

// RedisCache is the shared cache backend for multi-instance deployments.
// Entries are JSON blobs with a server-side TTL, so expiry needs no sweeping
// on our end and capacity is redis's problem.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: "search:results:",
	}
}

func (c *RedisCache) Lookup(ctx context.Context, key string) ([]models.Attraction, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewCacheBackendFailedError(fmt.Errorf("redis get: %w", err))
	}

	var results []models.Attraction
	if err := json.Unmarshal(data, &results); err != nil {
		// A corrupt entry is unreadable forever; drop it and report a miss.
		c.client.Del(ctx, c.prefix+key)
		return nil, false, nil
	}
	return results, true, nil
}

func (c *RedisCache) Store(ctx context.Context, key string, results []models.Attraction) error {
	data, err := json.Marshal(results)
	if err != nil {
		return apperrors.NewCacheBackendFailedError(fmt.Errorf("marshal results: %w", err))
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return apperrors.NewCacheBackendFailedError(fmt.Errorf("redis set: %w", err))
	}
	return nil
}
