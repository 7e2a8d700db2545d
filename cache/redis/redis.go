package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service implements cache.Service backed by Redis.
type Service struct {
	client *redis.Client
}

// New connects to Redis at the given URL and verifies the connection
// with a PING. A failed ping is returned as an error so the caller can
// decide to fall back to a no-op cache.
func New(ctx context.Context, url string) (*Service, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("fail to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("fail to ping redis: %w", err)
	}

	return &Service{client: client}, nil
}

// Get implements cache.Service
func (s *Service) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("fail to read cache entry: %w", err)
	}
	return val, true, nil
}

// Set implements cache.Service
func (s *Service) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("fail to write cache entry: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
