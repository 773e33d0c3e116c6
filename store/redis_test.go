package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client, prefix), mr
}

func TestRedisStore_GetMissing(t *testing.T) {
	s, _ := newTestRedis(t, "")

	value, found, err := s.Get(context.Background(), "unsplash_rate_remaining")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, value)
}

func TestRedisStore_SetGetWithTTL(t *testing.T) {
	s, mr := newTestRedis(t, "")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "unsplash_rate_remaining", 5, time.Hour))

	value, found, err := s.Get(ctx, "unsplash_rate_remaining")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(5), value)
	assert.Equal(t, time.Hour, mr.TTL("unsplash_rate_remaining"))
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newTestRedis(t, "")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", 3, time.Hour))
	mr.FastForward(time.Hour)

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Prefix(t *testing.T) {
	s, mr := newTestRedis(t, "app:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "unsplash_rate_limit", 50, time.Hour))

	raw, err := mr.Get("app:unsplash_rate_limit")
	require.NoError(t, err)
	assert.Equal(t, "50", raw)
}

func TestRedisStore_NonNumericValue(t *testing.T) {
	s, mr := newTestRedis(t, "")
	require.NoError(t, mr.Set("k", "abc"))

	_, found, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	s, mr := newTestRedis(t, "")
	mr.Close()

	_, _, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, s.Ping(context.Background()))
}
