package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMemory(t *testing.T) cache.Cache {
	t.Helper()

	c := cache.NewMemoryCache(&config.CacheConfig{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestMemoryCache(t *testing.T) {
	ctx := t.Context()
	value := TestData{Field1: "memory", Field2: 7}

	t.Run("Miss", func(t *testing.T) {
		c := setupMemory(t)

		var result TestData
		found, err := c.Get(ctx, "missing", &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
	})

	t.Run("Set then Get", func(t *testing.T) {
		c := setupMemory(t)

		require.NoError(t, c.Set(ctx, "k", value, 0))

		var result TestData
		found, err := c.Get(ctx, "k", &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, result)
	})

	t.Run("Expired entry is a miss", func(t *testing.T) {
		c := setupMemory(t)

		require.NoError(t, c.Set(ctx, "short", value, time.Millisecond))
		time.Sleep(10 * time.Millisecond)

		var result TestData
		found, err := c.Get(ctx, "short", &result)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		c := setupMemory(t)

		require.NoError(t, c.Set(ctx, "k", value, 0))
		require.NoError(t, c.Delete(ctx, "k"))

		var result TestData
		found, err := c.Get(ctx, "k", &result)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Decode into incompatible type", func(t *testing.T) {
		c := setupMemory(t)

		require.NoError(t, c.Set(ctx, "k", map[string]string{"field2": "not_an_int"}, 0))

		var result TestData
		found, err := c.Get(ctx, "k", &result)

		require.Error(t, err)
		assert.False(t, found)

		var jsonErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &jsonErr)
		assert.ErrorIs(t, err, cache.ErrMalformed)
	})

	t.Run("Marshal error", func(t *testing.T) {
		c := setupMemory(t)

		err := c.Set(ctx, "k", make(chan int), 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key k")
	})
}
