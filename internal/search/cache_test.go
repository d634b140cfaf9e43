// internal/search/cache_test.go
package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripscout/internal/models"
)

func TestMemoryCacheStoreAndLookup(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 50)
	ctx := context.Background()
	results := []models.Attraction{{PlaceID: "a"}, {PlaceID: "b"}}

	require.NoError(t, c.Store(ctx, "fp-1", results))

	got, ok, err := c.Lookup(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, results, got)

	_, ok, err = c.Lookup(ctx, "fp-missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheTTLBoundary(t *testing.T) {
	c := NewMemoryCache(300*time.Second, 50)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	require.NoError(t, c.Store(ctx, "fp", []models.Attraction{{PlaceID: "x"}}))

	now = base.Add(299 * time.Second)
	_, ok, err := c.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, ok)

	now = base.Add(301 * time.Second)
	_, ok, err = c.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)

	// Lazy expiry removed the entry.
	assert.Zero(t, c.Len())
}

func TestMemoryCacheCapacityEviction(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 50)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		now = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, c.Store(ctx, fmt.Sprintf("fp-%02d", i), []models.Attraction{{PlaceID: fmt.Sprintf("p%d", i)}}))
	}

	assert.Equal(t, 50, c.Len())

	// The 10 oldest entries are gone, the rest survive.
	for i := 0; i < 10; i++ {
		_, ok, err := c.Lookup(ctx, fmt.Sprintf("fp-%02d", i))
		require.NoError(t, err)
		assert.False(t, ok, "fp-%02d should have been evicted", i)
	}
	for i := 10; i < 60; i++ {
		_, ok, err := c.Lookup(ctx, fmt.Sprintf("fp-%02d", i))
		require.NoError(t, err)
		assert.True(t, ok, "fp-%02d should still be cached", i)
	}
}

func TestMemoryCacheRefreshKeepsEntryAlive(t *testing.T) {
	c := NewMemoryCache(300*time.Second, 50)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	require.NoError(t, c.Store(ctx, "fp", []models.Attraction{{PlaceID: "old"}}))

	now = base.Add(250 * time.Second)
	require.NoError(t, c.Store(ctx, "fp", []models.Attraction{{PlaceID: "new"}}))

	now = base.Add(400 * time.Second)
	got, ok, err := c.Lookup(ctx, "fp")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got[0].PlaceID)
}
