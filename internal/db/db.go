// Package db defines the durable key-value contract the repositories are
// written against. The concrete implementation lives in db/redis.
package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// declare narrow subsets of it (ISP).
type Store interface {
	Pinger
	KVStore
	Scanner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides point lookups, point writes, and deletes.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Scanner provides full-scan iteration over keys matching a pattern. Used by
// startup reload and clear; O(total keys).
type Scanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}
