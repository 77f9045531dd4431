package cache

import "context"

type noop[K comparable, V any] struct{}

// NewNoOp returns a cache that stores nothing; GetOrLoad always invokes the
// loader. Useful as a default when caching is disabled.
func NewNoOp[K comparable, V any]() Cache[K, V] {
	return noop[K, V]{}
}

func (noop[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}

func (noop[K, V]) GetOrLoad(ctx context.Context, _ K, load Loader[V]) (V, error) {
	return load(ctx)
}

func (noop[K, V]) Put(K, V)        {}
func (noop[K, V]) Contains(K) bool { return false }
func (noop[K, V]) Invalidate(K)    {}
func (noop[K, V]) InvalidateAll()  {}
func (noop[K, V]) Size() int       { return 0 }
