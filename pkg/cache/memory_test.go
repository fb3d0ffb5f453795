package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	_, err := c.Get(ctx, "permissions:alice")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "permissions:alice", []byte(`["user:read"]`), 0))

	value, err := c.Get(ctx, "permissions:alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["user:read"]`), value)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	require.NoError(t, c.Set(ctx, "short-lived", []byte("v"), 10*time.Millisecond))

	_, err := c.Get(ctx, "short-lived")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"), "deleting an absent key is not an error")

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	require.NoError(t, c.Set(ctx, "permissions:alice", []byte("a"), 0))
	require.NoError(t, c.Set(ctx, "permissions:bob", []byte("b"), 0))
	require.NoError(t, c.Set(ctx, "sessions:alice", []byte("s"), 0))

	removed, err := c.DeleteByPrefix(ctx, "permissions:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = c.Get(ctx, "permissions:alice")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = c.Get(ctx, "sessions:alice")
	assert.NoError(t, err, "keys outside the prefix survive")
}
