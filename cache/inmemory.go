package cache

import (
	"context"
	"sync"
)

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// flightGroup collapses concurrent loads of the same key into one call.
type flightGroup[K comparable, V any] struct {
	mu     sync.Mutex
	active map[K]*call[V]
}

func (g *flightGroup[K, V]) do(ctx context.Context, key K, load Loader[V]) (V, error) {
	g.mu.Lock()
	if g.active == nil {
		g.active = map[K]*call[V]{}
	}
	if c, ok := g.active[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err
	}
	c := &call[V]{done: make(chan struct{})}
	g.active[key] = c
	g.mu.Unlock()

	c.val, c.err = load(ctx)
	close(c.done)

	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
	return c.val, c.err
}

type inMemory[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	flight  flightGroup[K, V]
}

// NewInMemory returns an unbounded map-backed cache.
func NewInMemory[K comparable, V any]() Cache[K, V] {
	return &inMemory[K, V]{entries: map[K]V{}}
}

func (c *inMemory[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *inMemory[K, V]) GetOrLoad(ctx context.Context, key K, load Loader[V]) (V, error) {
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
		c.Put(key, v)
		return v, nil
	})
}

func (c *inMemory[K, V]) Put(key K, value V) {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
}

func (c *inMemory[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *inMemory[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *inMemory[K, V]) InvalidateAll() {
	c.mu.Lock()
	c.entries = map[K]V{}
	c.mu.Unlock()
}

func (c *inMemory[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
