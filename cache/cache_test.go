package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func implementations() map[string]func() Cache[string, int] {
	return map[string]func() Cache[string, int]{
		"inmemory": NewInMemory[string, int],
		"lru":      func() Cache[string, int] { return NewLRU[string, int](128) },
	}
}

func TestPutGet(t *testing.T) {
	t.Parallel()
	for name, newCache := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newCache()
			_, ok := c.Get("a")
			assert.False(t, ok)

			c.Put("a", 1)
			v, ok := c.Get("a")
			require.True(t, ok)
			assert.Equal(t, 1, v)
			assert.True(t, c.Contains("a"))
			assert.Equal(t, 1, c.Size())

			c.Put("a", 2)
			v, _ = c.Get("a")
			assert.Equal(t, 2, v)
		})
	}
}

func TestInvalidate(t *testing.T) {
	t.Parallel()
	for name, newCache := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newCache()
			c.Put("a", 1)
			c.Put("b", 2)
			c.Invalidate("a")
			assert.False(t, c.Contains("a"))
			assert.True(t, c.Contains("b"))
			c.InvalidateAll()
			assert.Equal(t, 0, c.Size())
		})
	}
}

func TestGetOrLoad(t *testing.T) {
	t.Parallel()
	for name, newCache := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newCache()
			loads := 0
			loader := func(context.Context) (int, error) {
				loads++
				return 42, nil
			}
			v, err := c.GetOrLoad(ctx, "k", loader)
			require.NoError(t, err)
			assert.Equal(t, 42, v)

			v, err = c.GetOrLoad(ctx, "k", loader)
			require.NoError(t, err)
			assert.Equal(t, 42, v)
			assert.Equal(t, 1, loads)
		})
	}
}

func TestGetOrLoadError(t *testing.T) {
	t.Parallel()
	c := NewInMemory[string, int]()
	wantErr := fmt.Errorf("boom")
	_, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) {
		return 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, c.Contains("k"), "errors are not cached")
}

func TestGetOrLoadSingleFlight(t *testing.T) {
	t.Parallel()
	c := NewInMemory[string, int]()
	var loads atomic.Int32
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) {
				loads.Add(1)
				return 7, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	close(start)
	wg.Wait()
	assert.LessOrEqual(t, loads.Load(), int32(2))
}

func TestNoOp(t *testing.T) {
	t.Parallel()
	c := NewNoOp[string, int]()
	c.Put("a", 1)
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 0, c.Size())

	loads := 0
	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(ctx, "a", func(context.Context) (int, error) {
			loads++
			return 9, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 9, v)
	}
	assert.Equal(t, 3, loads)
}

func TestLRUEvicts(t *testing.T) {
	t.Parallel()
	c := NewLRU[int, int](16)
	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	assert.LessOrEqual(t, c.Size(), 16)
}

func TestMemoize(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	square := Memoize(NewInMemory[string, int](), func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n * n, nil
	})

	for i := 0; i < 3; i++ {
		v, err := square(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 25, v)
	}
	v, err := square(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 36, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestKeyFor(t *testing.T) {
	t.Parallel()
	a, err := KeyFor(map[string]int{"x": 1})
	require.NoError(t, err)
	b, err := KeyFor(map[string]int{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := KeyFor(map[string]int{"x": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	_, err = KeyFor(func() {})
	assert.Error(t, err)
}
