package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "salah:timings:"

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisStore shares cached timings between server instances.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis. The connection is lazy; call Ping to
// verify it.
func NewRedisStore(opts RedisOptions) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStoreWithClient(rdb, opts.TTL)
}

// NewRedisStoreWithClient wraps an existing client. A zero ttl keeps
// entries for a day.
func NewRedisStoreWithClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, prefix: defaultKeyPrefix, ttl: ttl}
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// LoadTimings reads cached timings for k.
func (s *RedisStore) LoadTimings(ctx context.Context, k Key) (*Entry, bool) {
	data, err := s.rdb.Get(ctx, s.prefix+k.Hash()).Bytes()
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Date != k.Date.Format(dateLayout) {
		return nil, false
	}
	return &entry, true
}

// SaveTimings writes timings for k with the store's TTL.
func (s *RedisStore) SaveTimings(ctx context.Context, k Key, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.rdb.Set(ctx, s.prefix+k.Hash(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes cached timings for k. A missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, k Key) error {
	err := s.rdb.Del(ctx, s.prefix+k.Hash()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
