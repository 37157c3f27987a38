package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Noop satisfies Cache when redis is not configured; every read is a miss.
type Noop struct{}

func (Noop) GetJSON(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (Noop) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	return nil
}
func (Noop) Del(ctx context.Context, keys ...string) error { return nil }
