package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RedisStore keeps idempotency records in Redis so every API replica sees
// the same keys.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Reserve(ctx context.Context, key string) (*Response, error) {
	ok, err := s.rdb.SetNX(ctx, key, pendingMarker, TTLPending).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve %s: %w", key, err)
	}
	if ok {
		return nil, nil
	}

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; the holder gave up.
		return nil, ErrInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, key string, resp Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return s.rdb.Set(ctx, key, raw, TTLResponse).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
