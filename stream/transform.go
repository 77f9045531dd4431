package stream

import "sync"

// Map transforms each item with f using n goroutines. Errors, from f or
// from upstream, are forwarded downstream. Output order is not guaranteed;
// use OrderedMap to preserve it.
func Map[A, B any](in <-chan Try[A], n int, f func(A) (B, error)) <-chan Try[B] {
	return mapOrFilter(in, n, func(a Try[A]) (Try[B], bool) {
		return applyMap(a, f), true
	})
}

// OrderedMap is Map preserving input order.
func OrderedMap[A, B any](in <-chan Try[A], n int, f func(A) (B, error)) <-chan Try[B] {
	return orderedMapOrFilter(in, n, func(a Try[A]) (Try[B], bool) {
		return applyMap(a, f), true
	})
}

func applyMap[A, B any](a Try[A], f func(A) (B, error)) Try[B] {
	if a.Error != nil {
		return Try[B]{Error: a.Error}
	}
	b, err := f(a.Value)
	if err != nil {
		return Try[B]{Error: err}
	}
	return Try[B]{Value: b}
}

// Filter keeps the items accepted by f, using n goroutines. Errors are
// never filtered out. Use OrderedFilter to preserve input order.
func Filter[A any](in <-chan Try[A], n int, f func(A) (bool, error)) <-chan Try[A] {
	return mapOrFilter(in, n, func(a Try[A]) (Try[A], bool) {
		return applyFilter(a, f)
	})
}

// OrderedFilter is Filter preserving input order.
func OrderedFilter[A any](in <-chan Try[A], n int, f func(A) (bool, error)) <-chan Try[A] {
	return orderedMapOrFilter(in, n, func(a Try[A]) (Try[A], bool) {
		return applyFilter(a, f)
	})
}

func applyFilter[A any](a Try[A], f func(A) (bool, error)) (Try[A], bool) {
	if a.Error != nil {
		return a, true
	}
	keep, err := f(a.Value)
	if err != nil {
		return Try[A]{Error: err}, true
	}
	return a, keep
}

// FlatMap expands each item into a slice whose elements are emitted
// individually, using n goroutines. Output order is not guaranteed.
func FlatMap[A, B any](in <-chan Try[A], n int, f func(A) ([]B, error)) <-chan Try[B] {
	if in == nil {
		return nil
	}
	out := make(chan Try[B])
	loop(in, out, n, func(a Try[A]) {
		if a.Error != nil {
			out <- Try[B]{Error: a.Error}
			return
		}
		bb, err := f(a.Value)
		if err != nil {
			out <- Try[B]{Error: err}
			return
		}
		for _, b := range bb {
			out <- Try[B]{Value: b}
		}
	})
	return out
}

// Catch handles upstream errors with f using n goroutines. When f returns
// nil the error is dropped; otherwise it is replaced by f's result.
func Catch[A any](in <-chan Try[A], n int, f func(error) error) <-chan Try[A] {
	return mapOrFilter(in, n, func(a Try[A]) (Try[A], bool) {
		if a.Error == nil {
			return a, true
		}
		if err := f(a.Error); err != nil {
			return Try[A]{Error: err}, true
		}
		return a, false
	})
}

// Distinct drops repeated values, keeping the first occurrence. Runs on one
// goroutine since it is stateful.
func Distinct[A comparable](in <-chan Try[A]) <-chan Try[A] {
	seen := map[A]struct{}{}
	return mapOrFilter(in, 1, func(a Try[A]) (Try[A], bool) {
		if a.Error != nil {
			return a, true
		}
		if _, dup := seen[a.Value]; dup {
			return a, false
		}
		seen[a.Value] = struct{}{}
		return a, true
	})
}

// Limit passes through at most n values, then stops the upstream.
func Limit[A any](in <-chan Try[A], n int) <-chan Try[A] {
	if in == nil {
		return nil
	}
	in, earlyExit := breakable(in)
	taken := 0
	return mapOrFilter(in, 1, func(a Try[A]) (Try[A], bool) {
		if a.Error != nil {
			return a, true
		}
		if taken >= n {
			earlyExit()
			return a, false
		}
		taken++
		if taken == n {
			earlyExit()
		}
		return a, true
	})
}

// Skip drops the first n values.
func Skip[A any](in <-chan Try[A], n int) <-chan Try[A] {
	skipped := 0
	return mapOrFilter(in, 1, func(a Try[A]) (Try[A], bool) {
		if a.Error != nil {
			return a, true
		}
		if skipped < n {
			skipped++
			return a, false
		}
		return a, true
	})
}

// Union merges multiple streams into one. Output order is not guaranteed.
func Union[A any](ins ...<-chan Try[A]) <-chan Try[A] {
	switch len(ins) {
	case 0:
		return nil
	case 1:
		return ins[0]
	}
	out := make(chan Try[A])
	var wg sync.WaitGroup
	for _, in := range ins {
		in := in
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range in {
				out <- a
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Zip pairs the streams element-wise, stopping at the shorter one and
// stopping the longer one's upstream.
func Zip[A any, B any](as <-chan Try[A], bs <-chan Try[B]) <-chan Try[KV2[A, B]] {
	out := make(chan Try[KV2[A, B]])
	asIn, stopA := breakable(as)
	bsIn, stopB := breakable(bs)
	go func() {
		defer close(out)
		for {
			a, okA := <-asIn
			b, okB := <-bsIn
			if !okA || !okB {
				stopA()
				stopB()
				return
			}
			if a.Error != nil {
				out <- Try[KV2[A, B]]{Error: a.Error}
				continue
			}
			if b.Error != nil {
				out <- Try[KV2[A, B]]{Error: b.Error}
				continue
			}
			out <- Try[KV2[A, B]]{Value: KV2[A, B]{First: a.Value, Second: b.Value}}
		}
	}()
	return out
}

// KV2 pairs two values of arbitrary types for Zip.
type KV2[A, B any] struct {
	First  A
	Second B
}

// ZipWithIndex pairs each value with its zero-based position.
func ZipWithIndex[A any](in <-chan Try[A]) <-chan Try[KV2[A, int64]] {
	var i int64
	return mapOrFilter(in, 1, func(a Try[A]) (Try[KV2[A, int64]], bool) {
		if a.Error != nil {
			return Try[KV2[A, int64]]{Error: a.Error}, true
		}
		kv := KV2[A, int64]{First: a.Value, Second: i}
		i++
		return Try[KV2[A, int64]]{Value: kv}, true
	})
}

// Batch groups values into slices of at most size elements. Errors pass
// through individually; a pending batch is flushed first so ordering within
// batches is stable.
func Batch[A any](in <-chan Try[A], size int) <-chan Try[[]A] {
	if in == nil {
		return nil
	}
	out := make(chan Try[[]A])
	go func() {
		defer close(out)
		var batch []A
		flush := func() {
			if len(batch) > 0 {
				out <- Try[[]A]{Value: batch}
				batch = nil
			}
		}
		for a := range in {
			if a.Error != nil {
				flush()
				out <- Try[[]A]{Error: a.Error}
				continue
			}
			batch = append(batch, a.Value)
			if len(batch) >= size {
				flush()
			}
		}
		flush()
	}()
	return out
}
