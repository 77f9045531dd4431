// Package stream provides channel-based streaming with configurable
// concurrency. Items travel wrapped in a Try carrier so errors flow through
// pipelines and surface at terminal operations.
package stream

// Try carries a value or an error through a pipeline.
type Try[T any] struct {
	Value T
	Error error
}

// KV is the element of pair streams.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// FromSlice returns a stream over the slice elements.
func FromSlice[T any](items []T) <-chan Try[T] {
	out := make(chan Try[T])
	go func() {
		defer close(out)
		for _, item := range items {
			out <- Try[T]{Value: item}
		}
	}()
	return out
}

// Wrap converts a channel of plain values into a stream. A non-nil err is
// emitted first. Either the channel or the error may be nil, but not both.
func Wrap[T any](values <-chan T, err error) <-chan Try[T] {
	if values == nil && err == nil {
		return nil
	}
	out := make(chan Try[T])
	go func() {
		defer close(out)
		if err != nil {
			out <- Try[T]{Error: err}
		}
		if values == nil {
			return
		}
		for v := range values {
			out <- Try[T]{Value: v}
		}
	}()
	return out
}

// FromChan converts a channel of plain values into a stream.
func FromChan[T any](values <-chan T) <-chan Try[T] {
	return Wrap(values, nil)
}

// Unwrap splits a stream into a channel of values and a channel of errors.
func Unwrap[T any](in <-chan Try[T]) (<-chan T, <-chan error) {
	if in == nil {
		return nil, nil
	}
	out := make(chan T)
	errs := make(chan error)
	go func() {
		defer close(out)
		defer close(errs)
		for x := range in {
			if x.Error != nil {
				errs <- x.Error
			} else {
				out <- x.Value
			}
		}
	}()
	return out, errs
}

// Generate produces a stream by repeatedly calling next until it returns
// false.
func Generate[T any](next func() (T, bool)) <-chan Try[T] {
	out := make(chan Try[T])
	go func() {
		defer close(out)
		for {
			v, ok := next()
			if !ok {
				return
			}
			out <- Try[T]{Value: v}
		}
	}()
	return out
}

// Drain consumes and discards the stream, blocking until it closes.
func Drain[T any](in <-chan T) {
	for range in {
	}
}

// DrainNB drains the stream in a background goroutine.
func DrainNB[T any](in <-chan T) {
	go Drain(in)
}
