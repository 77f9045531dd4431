package broker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeProducer(from, to int) Producer[int] {
	return ProducerFunc[int](func(ctx context.Context, yield func(int) error) error {
		for i := from; i < to; i++ {
			if err := yield(i); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestBuildValidation(t *testing.T) {
	t.Parallel()
	_, err := New[int]().AddConsumer(func(context.Context, int) error { return nil }, 1).Build()
	assert.Error(t, err, "no producers")

	_, err = New[int]().AddProducer(rangeProducer(0, 1), 1).Build()
	assert.Error(t, err, "no consumers")

	_, err = New[int]().
		AddProducer(rangeProducer(0, 1), 1).
		AddConsumer(func(context.Context, int) error { return nil }, 1).
		BufferSize(-1).
		Build()
	assert.Error(t, err, "negative buffer")

	b, err := New[int]().
		AddProducer(rangeProducer(0, 1), 2).
		AddConsumer(func(context.Context, int) error { return nil }, 3).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 10, b.bufferSize, "default buffer is 2*(producers+consumers)")
}

func TestAllItemsConsumed(t *testing.T) {
	t.Parallel()
	var sum atomic.Int64
	var count atomic.Int64

	b, err := New[int]().
		BufferSize(8).
		AddProducer(rangeProducer(1, 101), 1).
		AddConsumer(func(_ context.Context, v int) error {
			sum.Add(int64(v))
			count.Add(1)
			return nil
		}, 4).
		Build()
	require.NoError(t, err)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, int64(100), count.Load())
	assert.Equal(t, int64(5050), sum.Load())
}

func TestMultipleProducers(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	seen := map[int]int{}

	b, err := New[int]().
		AddProducer(rangeProducer(0, 50), 1).
		AddProducer(rangeProducer(50, 100), 1).
		AddConsumer(func(_ context.Context, v int) error {
			mu.Lock()
			seen[v]++
			mu.Unlock()
			return nil
		}, 2).
		Build()
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))

	require.Len(t, seen, 100)
	for v, n := range seen {
		assert.Equal(t, 1, n, "value %d consumed once", v)
	}
}

func TestSharedProducerOnManyGoroutines(t *testing.T) {
	t.Parallel()
	var next atomic.Int64
	var consumed atomic.Int64
	shared := ProducerFunc[int](func(ctx context.Context, yield func(int) error) error {
		for {
			n := next.Add(1)
			if n > 500 {
				return nil
			}
			if err := yield(int(n)); err != nil {
				return err
			}
		}
	})

	b, err := New[int]().
		AddProducer(shared, 4).
		AddConsumer(func(context.Context, int) error {
			consumed.Add(1)
			return nil
		}, 4).
		Build()
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, int64(500), consumed.Load())
}

func TestProducerError(t *testing.T) {
	t.Parallel()
	boom := fmt.Errorf("boom")
	b, err := New[int]().
		AddProducer(ProducerFunc[int](func(ctx context.Context, yield func(int) error) error {
			_ = yield(1)
			return boom
		}), 1).
		AddConsumer(func(context.Context, int) error { return nil }, 1).
		Build()
	require.NoError(t, err)
	assert.ErrorIs(t, b.Run(context.Background()), boom)
}

func TestConsumerErrorStopsProducers(t *testing.T) {
	t.Parallel()
	boom := fmt.Errorf("boom")
	b, err := New[int]().
		BufferSize(1).
		AddProducer(ProducerFunc[int](func(ctx context.Context, yield func(int) error) error {
			for i := 0; ; i++ {
				if err := yield(i); err != nil {
					return nil // shutdown requested
				}
			}
		}), 1).
		AddConsumer(func(_ context.Context, v int) error {
			if v >= 3 {
				return boom
			}
			return nil
		}, 1).
		Build()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- b.Run(context.Background()) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("broker did not stop after consumer error")
	}
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	b, err := New[int]().
		BufferSize(1).
		AddProducer(ProducerFunc[int](func(ctx context.Context, yield func(int) error) error {
			for i := 0; ; i++ {
				if err := yield(i); err != nil {
					return nil
				}
			}
		}), 1).
		AddConsumer(func(_ context.Context, v int) error {
			if v == 10 {
				cancel()
			}
			return nil
		}, 1).
		Build()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("broker did not stop after cancellation")
	}
}
