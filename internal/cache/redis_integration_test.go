//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests for the ingested-game marker cache
// Run with: go test -v -tags=integration ./internal/cache/...

func setupTestCache(t *testing.T) (*RedisCache, context.Context) {
	ctx := context.Background()

	c, err := NewRedisCache(Config{
		Host: "localhost",
		Port: "6379",
		DB:   1,
	})
	require.NoError(t, err, "Failed to connect to test redis")

	require.NoError(t, c.FlushIngested(ctx), "Should start from a clean marker set")
	return c, ctx
}

func TestMarkerLifecycle(t *testing.T) {
	c, ctx := setupTestCache(t)
	defer c.Close()

	assert.False(t, c.IsIngested(ctx, "0022400001"), "Unmarked game should be a miss")

	c.MarkIngested(ctx, "0022400001", time.Hour)
	assert.True(t, c.IsIngested(ctx, "0022400001"), "Marked game should be a hit")
	assert.False(t, c.IsIngested(ctx, "0022400002"), "Other games should stay misses")
}

// Rebuilding the store drops its games; the markers must be dropped
// with it, or a rerun would skip games the store no longer has.
func TestFlushIngestedClearsMarkers(t *testing.T) {
	c, ctx := setupTestCache(t)
	defer c.Close()

	c.MarkIngested(ctx, "0022400001", time.Hour)
	c.MarkIngested(ctx, "0022400002", time.Hour)
	require.True(t, c.IsIngested(ctx, "0022400001"))
	require.True(t, c.IsIngested(ctx, "0022400002"))

	// Unrelated keys must survive the flush.
	require.NoError(t, c.client.Set(ctx, "nba:other:keep", "1", time.Hour).Err())

	require.NoError(t, c.FlushIngested(ctx), "Flush should succeed")

	assert.False(t, c.IsIngested(ctx, "0022400001"), "Marker should be gone after flush")
	assert.False(t, c.IsIngested(ctx, "0022400002"), "Marker should be gone after flush")

	n, err := c.client.Exists(ctx, "nba:other:keep").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "Flush should only touch ingested-game markers")

	require.NoError(t, c.client.Del(ctx, "nba:other:keep").Err())
}
