// Package cache provides the key-value store used for computed permission
// sets. The store is content-agnostic: it never computes what it holds, it
// only stores, returns and evicts opaque values.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

// ErrInvalidation marks a failed eviction after a committed write. Callers
// surface it for visibility but never roll back the mutation it follows.
var ErrInvalidation = errors.New("cache: invalidation failed")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every key starting with prefix and returns the
	// number of keys removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}
