// Package cache provides a generic cache abstraction with pluggable
// backing stores and function memoization.
package cache

import "context"

// Loader computes a value for a key that is absent from the cache.
type Loader[V any] func(ctx context.Context) (V, error)

// Cache maps keys to values. Implementations decide eviction. All
// implementations are safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the cached value for the key.
	Get(key K) (V, bool)
	// GetOrLoad returns the cached value, computing and storing it with
	// the loader when absent. Concurrent loads of the same key are
	// collapsed into one loader call where the implementation supports it.
	GetOrLoad(ctx context.Context, key K, load Loader[V]) (V, error)
	// Put stores a value, replacing any existing one.
	Put(key K, value V)
	// Contains reports whether the key is cached.
	Contains(key K) bool
	// Invalidate removes the key.
	Invalidate(key K)
	// InvalidateAll removes everything.
	InvalidateAll()
	// Size returns the number of cached entries.
	Size() int
}
