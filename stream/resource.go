package stream

import (
	"bufio"
	"context"
	"fmt"

	"github.com/dbracewell/mango/resource"
)

// FromResource streams the lines of a resource. Open or scan errors arrive
// as stream errors.
func FromResource(ctx context.Context, r resource.Resource) <-chan Try[string] {
	out := make(chan Try[string])
	go func() {
		defer close(out)
		err := resource.ReadLines(ctx, r, func(line string) error {
			select {
			case out <- Try[string]{Value: line}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			out <- Try[string]{Error: err}
		}
	}()
	return out
}

// SaveText writes each value as a line to the resource, consuming the
// stream.
func SaveText[A any](ctx context.Context, in <-chan Try[A], r resource.Resource) error {
	wc, err := r.Create(ctx)
	if err != nil {
		DrainNB(in)
		return fmt.Errorf("create %s: %w", r, err)
	}
	w := bufio.NewWriter(wc)
	err = ForEach(in, 1, func(a A) error {
		if _, werr := fmt.Fprintln(w, a); werr != nil {
			return werr
		}
		return nil
	})
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save to %s: %w", r, err)
	}
	return nil
}
