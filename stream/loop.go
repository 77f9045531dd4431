package stream

import "sync"

// loop processes items from in on n goroutines. When done is non-nil it is
// closed after all items are processed.
func loop[A, B any](in <-chan A, done chan<- B, n int, f func(A)) {
	if n <= 1 {
		go func() {
			if done != nil {
				defer close(done)
			}
			for a := range in {
				f(a)
			}
		}()
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range in {
				f(a)
			}
		}()
	}
	if done != nil {
		go func() {
			wg.Wait()
			close(done)
		}()
	}
}

type orderedItem[A any] struct {
	value        A
	canWrite     chan struct{}
	nextCanWrite chan struct{}
}

// orderedLoop is like loop but lets f write results in input order: f must
// receive from canWrite exactly once before writing its result.
func orderedLoop[A, B any](in <-chan A, done chan<- B, n int, f func(a A, canWrite <-chan struct{})) {
	if n <= 1 {
		canWrite := make(chan struct{}, 1)
		close(canWrite)
		go func() {
			if done != nil {
				defer close(done)
			}
			for a := range in {
				f(a, canWrite)
			}
		}()
		return
	}

	// Each in-flight item owns a canWrite channel and signals the next
	// item's channel once its own result has been written.
	orderedIn := make(chan orderedItem[A])
	go func() {
		defer close(orderedIn)
		nextCanWrite := make(chan struct{}, 1)
		nextCanWrite <- struct{}{}
		for a := range in {
			canWrite := nextCanWrite
			nextCanWrite = make(chan struct{}, 1)
			orderedIn <- orderedItem[A]{a, canWrite, nextCanWrite}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range orderedIn {
				f(item.value, item.canWrite)
				item.nextCanWrite <- struct{}{}
			}
		}()
	}
	if done != nil {
		go func() {
			wg.Wait()
			close(done)
		}()
	}
}

// mapOrFilter emits f's result when keep is true, dropping the item
// otherwise.
func mapOrFilter[A, B any](in <-chan A, n int, f func(A) (B, bool)) <-chan B {
	if in == nil {
		return nil
	}
	out := make(chan B)
	loop(in, out, n, func(a A) {
		if b, keep := f(a); keep {
			out <- b
		}
	})
	return out
}

// orderedMapOrFilter is mapOrFilter preserving input order.
func orderedMapOrFilter[A, B any](in <-chan A, n int, f func(A) (B, bool)) <-chan B {
	if in == nil {
		return nil
	}
	out := make(chan B)
	orderedLoop(in, out, n, func(a A, canWrite <-chan struct{}) {
		b, keep := f(a)
		<-canWrite
		if keep {
			out <- b
		}
	})
	return out
}

// breakable returns a proxy for in plus an earlyExit func. After earlyExit
// the proxy closes and the rest of in is drained in the background, so
// upstream goroutines are not leaked.
func breakable[A any](in <-chan A) (<-chan A, func()) {
	if in == nil {
		return nil, func() {}
	}
	out := make(chan A)
	stop := make(chan struct{})
	var once sync.Once
	earlyExit := func() {
		once.Do(func() { close(stop) })
	}
	go func() {
		defer close(out)
		for a := range in {
			select {
			case <-stop:
				DrainNB(in)
				return
			case out <- a:
			}
		}
	}()
	return out, earlyExit
}
