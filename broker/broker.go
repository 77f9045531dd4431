// Package broker orchestrates bounded-buffer producer/consumer pipelines.
package broker

import (
	"context"
	"fmt"
	"sync"
)

// Producer generates items, handing each to yield. Produce returns when the
// producer has nothing more to offer; yield returns an error when the run is
// shutting down and production should stop. A producer registered to run on
// multiple goroutines must be safe for concurrent use.
type Producer[V any] interface {
	Produce(ctx context.Context, yield func(V) error) error
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc[V any] func(ctx context.Context, yield func(V) error) error

func (f ProducerFunc[V]) Produce(ctx context.Context, yield func(V) error) error {
	return f(ctx, yield)
}

// Consumer handles one item. A consumer registered on multiple goroutines
// must be safe for concurrent use.
type Consumer[V any] func(ctx context.Context, v V) error

// Broker runs producers and consumers connected by a bounded channel.
// Construct with a Builder.
type Broker[V any] struct {
	bufferSize int
	producers  []Producer[V]
	consumers  []Consumer[V]
}

// Builder accumulates the producers, consumers, and buffer size for a
// Broker.
type Builder[V any] struct {
	bufferSize int
	producers  []Producer[V]
	consumers  []Consumer[V]
}

// New starts a broker definition.
func New[V any]() *Builder[V] {
	return &Builder[V]{}
}

// BufferSize sets the channel capacity. When unset the broker uses
// 2*(producers+consumers).
func (b *Builder[V]) BufferSize(n int) *Builder[V] {
	b.bufferSize = n
	return b
}

// AddProducer registers the producer to run on n goroutines.
func (b *Builder[V]) AddProducer(p Producer[V], n int) *Builder[V] {
	for i := 0; i < n; i++ {
		b.producers = append(b.producers, p)
	}
	return b
}

// AddConsumer registers the consumer to run on n goroutines.
func (b *Builder[V]) AddConsumer(c Consumer[V], n int) *Builder[V] {
	for i := 0; i < n; i++ {
		b.consumers = append(b.consumers, c)
	}
	return b
}

// Build validates the definition and returns the broker.
func (b *Builder[V]) Build() (*Broker[V], error) {
	if len(b.producers) == 0 {
		return nil, fmt.Errorf("broker needs at least one producer")
	}
	if len(b.consumers) == 0 {
		return nil, fmt.Errorf("broker needs at least one consumer")
	}
	if b.bufferSize < 0 {
		return nil, fmt.Errorf("negative buffer size %d", b.bufferSize)
	}
	size := b.bufferSize
	if size == 0 {
		size = 2 * (len(b.producers) + len(b.consumers))
	}
	return &Broker[V]{
		bufferSize: size,
		producers:  b.producers,
		consumers:  b.consumers,
	}, nil
}

// Run executes the pipeline: all producers and consumers start, the channel
// closes when the last producer returns, and Run returns once consumers have
// drained it. The first error from any producer or consumer is returned;
// an error also cancels the run for everyone else.
func (br *Broker[V]) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan V, br.bufferSize)

	var firstErr error
	var errOnce sync.Once
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		cancel()
	}

	yield := func(v V) error {
		select {
		case queue <- v:
			return nil
		case <-runCtx.Done():
			return runCtx.Err()
		}
	}

	var producerWG sync.WaitGroup
	for _, p := range br.producers {
		p := p
		producerWG.Add(1)
		go func() {
			defer producerWG.Done()
			if err := p.Produce(runCtx, yield); err != nil {
				fail(fmt.Errorf("produce: %w", err))
			}
		}()
	}
	go func() {
		producerWG.Wait()
		close(queue)
	}()

	var consumerWG sync.WaitGroup
	for _, c := range br.consumers {
		c := c
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			for v := range queue {
				if err := c(runCtx, v); err != nil {
					fail(fmt.Errorf("consume: %w", err))
					// keep draining so producers are not blocked forever
				}
			}
		}()
	}
	consumerWG.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
