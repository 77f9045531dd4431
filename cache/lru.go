package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

type lruCache[K comparable, V any] struct {
	arc    *lru.ARCCache
	flight flightGroup[K, V]
}

// NewLRU returns a cache bounded to size entries with adaptive (ARC)
// eviction. It panics on a non-positive size.
func NewLRU[K comparable, V any](size int) Cache[K, V] {
	arc, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &lruCache[K, V]{arc: arc}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	if v, ok := c.arc.Get(key); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

func (c *lruCache[K, V]) GetOrLoad(ctx context.Context, key K, load Loader[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	return c.flight.do(ctx, key, func(ctx context.Context) (V, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			var zero V
			return zero, err
		}
		c.arc.Add(key, v)
		return v, nil
	})
}

func (c *lruCache[K, V]) Put(key K, value V) { c.arc.Add(key, value) }

func (c *lruCache[K, V]) Contains(key K) bool { return c.arc.Contains(key) }

func (c *lruCache[K, V]) Invalidate(key K) { c.arc.Remove(key) }

func (c *lruCache[K, V]) InvalidateAll() { c.arc.Purge() }

func (c *lruCache[K, V]) Size() int { return c.arc.Len() }
