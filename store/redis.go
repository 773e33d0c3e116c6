package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// RedisStore implements the ratelimiter.Store interface using Redis as the backend.
// It is suitable for deployments where multiple application instances need to
// share the same view of the upstream quota. Expiry is delegated to Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ratelimiter.Store = (*RedisStore)(nil)

// NewRedis creates a new RedisStore. prefix is prepended to every key and may be empty.
func NewRedis(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Get reads key. A missing key is reported as not found, not as an error.
func (s *RedisStore) Get(ctx context.Context, key string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", raw, err)
	}
	return value, true, nil
}

// Set writes key with an expiry of ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value int64, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Ping checks the connection to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
