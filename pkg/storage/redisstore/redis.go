// Package redisstore keeps session key/value pairs in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chainsafe/ton-deeplink/pkg/config"
)

// Store implements session storage on a redis client. A zero TTL keeps keys
// until they are removed.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New wraps an existing client.
func New(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewClient builds a client from config and checks connectivity. More than
// one address selects a cluster client.
func NewClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis addrs are required")
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}
	return nil
}
