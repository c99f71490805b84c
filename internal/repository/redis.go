package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the redis-backed key-value store
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis store and verifies connectivity
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get returns the value stored under key, or (nil, nil) if the key is absent
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes key and its value
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
