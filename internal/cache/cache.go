// Package cache provides a small byte-oriented TTL cache with Redis and
// in-memory backends. Callers treat every cache error as a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type Cache interface {
	// returns found=false on a miss
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// decodes a cached JSON value into dst
func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}

	return true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	return c.Set(ctx, key, raw, ttl)
}
