// Package cache holds the shared query cache that list pages read through.
package cache

import (
	"context"
	"time"
)

// Store is a byte-value store with per-entry expiry
type Store interface {
	// Get returns the value and whether it was found and not expired
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix and returns how
	// many were removed
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Close() error
}
