package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gallery:doc:"

type redisStore struct {
	client *redis.Client
}

func newRedisStore(dsn string) *redisStore {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		opts = &redis.Options{Addr: dsn}
	}
	return &redisStore{client: redis.NewClient(opts)}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	// Documents never expire; the collection is the source of truth.
	return s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
