package stream

import "sync"

// ForEach applies f to every value using n goroutines and blocks until the
// stream is exhausted or an error occurs. On early termination the upstream
// is drained to avoid goroutine leaks. Returns the first error encountered.
// With n == 1 processing is sequential and ordered.
func ForEach[A any](in <-chan Try[A], n int, f func(A) error) error {
	if n <= 1 {
		for a := range in {
			err := a.Error
			if err == nil {
				err = f(a.Value)
			}
			if err != nil {
				DrainNB(in)
				return err
			}
		}
		return nil
	}

	var retErr error
	var once sync.Once
	in, earlyExit := breakable(in)
	done := make(chan struct{})

	loop(in, done, n, func(a Try[A]) {
		err := a.Error
		if err == nil {
			err = f(a.Value)
		}
		if err != nil {
			earlyExit()
			once.Do(func() { retErr = err })
		}
	})

	<-done
	return retErr
}

// ToSlice collects all values, stopping at the first error.
func ToSlice[A any](in <-chan Try[A]) ([]A, error) {
	var out []A
	err := ForEach(in, 1, func(a A) error {
		out = append(out, a)
		return nil
	})
	return out, err
}

// First returns the first value and stops the upstream. The bool is false
// when the stream is empty.
func First[A any](in <-chan Try[A]) (A, bool, error) {
	in, earlyExit := breakable(in)
	for a := range in {
		earlyExit()
		return a.Value, a.Error == nil, a.Error
	}
	var zero A
	return zero, false, nil
}

// Count returns the number of values, consuming the stream.
func Count[A any](in <-chan Try[A]) (int64, error) {
	var n int64
	err := ForEach(in, 1, func(A) error {
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Reduce combines the values pairwise with f. The bool is false when the
// stream had no values.
func Reduce[A any](in <-chan Try[A], f func(A, A) (A, error)) (A, bool, error) {
	var acc A
	seen := false
	err := ForEach(in, 1, func(a A) error {
		if !seen {
			acc = a
			seen = true
			return nil
		}
		var ferr error
		acc, ferr = f(acc, a)
		return ferr
	})
	if err != nil {
		var zero A
		return zero, false, err
	}
	return acc, seen, nil
}

// Fold combines the values into zero with f, left to right.
func Fold[A, B any](in <-chan Try[A], zero B, f func(B, A) (B, error)) (B, error) {
	acc := zero
	err := ForEach(in, 1, func(a A) error {
		var ferr error
		acc, ferr = f(acc, a)
		return ferr
	})
	if err != nil {
		var zeroB B
		return zeroB, err
	}
	return acc, nil
}

// Any reports whether any value satisfies f, stopping the upstream on the
// first hit.
func Any[A any](in <-chan Try[A], n int, f func(A) (bool, error)) (bool, error) {
	errFound := errSentinel{}
	err := ForEach(in, n, func(a A) error {
		ok, ferr := f(a)
		if ferr != nil {
			return ferr
		}
		if ok {
			return errFound
		}
		return nil
	})
	if err == nil {
		return false, nil
	}
	if _, ok := err.(errSentinel); ok {
		return true, nil
	}
	return false, err
}

// All reports whether every value satisfies f, stopping the upstream on the
// first miss.
func All[A any](in <-chan Try[A], n int, f func(A) (bool, error)) (bool, error) {
	ok, err := Any(in, n, func(a A) (bool, error) {
		pass, ferr := f(a)
		return !pass, ferr
	})
	return !ok, err
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }
