// internal/search/rediscache_test.go
package search

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripscout/internal/models"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, ttl), mr
}

func TestRedisCacheStoreAndLookup(t *testing.T) {
	c, _ := newTestRedisCache(t, 5*time.Minute)
	ctx := context.Background()
	results := []models.Attraction{{PlaceID: "a", Name: "Alpha", Rating: 4.2}}

	require.NoError(t, c.Store(ctx, "fp-1", results))

	got, ok, err := c.Lookup(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, results, got)

	_, ok, err = c.Lookup(ctx, "fp-missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	c, mr := newTestRedisCache(t, 300*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "fp", []models.Attraction{{PlaceID: "x"}}))

	mr.FastForward(299 * time.Second)
	_, ok, err := c.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = c.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheCorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestRedisCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("search:results:fp", "not json"))

	_, ok, err := c.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheBackendDown(t *testing.T) {
	c, mr := newTestRedisCache(t, 5*time.Minute)
	ctx := context.Background()
	mr.Close()

	_, _, err := c.Lookup(ctx, "fp")
	assert.Error(t, err)

	err = c.Store(ctx, "fp", []models.Attraction{{PlaceID: "x"}})
	assert.Error(t, err)
}
