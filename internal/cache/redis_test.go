package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a running Redis; set REDIS_ADDR to enable.
func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store := NewRedisStore(RedisOptions{Addr: addr, TTL: time.Minute})
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	k := sampleKey()
	k.City = t.Name()
	t.Cleanup(func() { store.Delete(ctx, k) })

	t.Run("miss before save", func(t *testing.T) {
		_, ok := store.LoadTimings(ctx, k)
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.SaveTimings(ctx, k, NewEntry(k, sampleAPIResponse())))

		got, ok := store.LoadTimings(ctx, k)
		require.True(t, ok)
		assert.Equal(t, "05:17", got.Timings.Fajr)
		assert.Equal(t, "10 Ramaḍān 1447", got.Hijri)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, k))
		_, ok := store.LoadTimings(ctx, k)
		assert.False(t, ok)
	})
}

func TestNewRedisStoreWithClient_DefaultTTL(t *testing.T) {
	s := NewRedisStore(RedisOptions{Addr: "127.0.0.1:0"})
	defer s.Close()
	assert.Equal(t, 24*time.Hour, s.ttl)
	assert.Equal(t, defaultKeyPrefix, s.prefix)
}
