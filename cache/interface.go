package cache

import (
	"context"
	"time"
)

// Service defines the interface for exact-match response cache operations.
// The key is the raw query text; callers that want normalization must do
// it themselves (none of them do, by contract).
type Service interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Noop is the stand-in used when no cache backend is reachable: every
// lookup misses and every store is discarded. The pipeline keeps working.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (Noop) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}
