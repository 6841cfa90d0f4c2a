// Package cache keeps the start-up and internship lists in Redis so that
// several API instances share one warm copy and Postgres only sees a full
// list query after a write or once the TTL expires.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys under which the two lists are stored.
const (
	KeyStartUps    = "work20:start-ups"
	KeyInternships = "work20:internships"
)

// Store is a JSON value cache.
type Store interface {
	// Get decodes the value at key into dst. ok is false on a miss.
	Get(ctx context.Context, key string, dst any) (ok bool, err error)
	// Set stores v at key.
	Set(ctx context.Context, key string, v any) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache.NewRedisClient: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache.NewRedisClient: ping: %w", err)
	}
	return client, nil
}

type redisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisStore returns a Store backed by rdb. Entries expire after ttl;
// a ttl of zero keeps them until the next Delete.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.redisStore.Get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A value we cannot decode is as good as absent; drop it.
		_ = s.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache.redisStore.Set %s: encode: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache.redisStore.Set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache.redisStore.Delete: %w", err)
	}
	return nil
}

// Nop is a Store that never hits. It is used when REDIS_URL is not configured.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error         { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }
