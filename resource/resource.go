// Package resource abstracts named byte sources and sinks: files, in-memory
// buffers, URLs, and (in the s3 subpackage) object storage.
package resource

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Resource is a named source and/or sink of bytes. Implementations that do
// not support writing return an error from Create.
type Resource interface {
	// Open returns a reader over the resource's contents.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Create returns a writer that replaces the resource's contents.
	Create(ctx context.Context) (io.WriteCloser, error)
	// Exists reports whether the resource currently has contents.
	Exists(ctx context.Context) bool
	// String describes the resource, e.g. a path or URL.
	String() string
}

// ReadAll reads the full contents of the resource.
func ReadAll(ctx context.Context, r Resource) ([]byte, error) {
	rc, err := r.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r, err)
	}
	return b, nil
}

// WriteAll replaces the contents of the resource.
func WriteAll(ctx context.Context, r Resource, b []byte) error {
	wc, err := r.Create(ctx)
	if err != nil {
		return fmt.Errorf("create %s: %w", r, err)
	}
	if _, err := wc.Write(b); err != nil {
		wc.Close()
		return fmt.Errorf("write %s: %w", r, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", r, err)
	}
	return nil
}

// ReadLines invokes f for each line of the resource, stopping at the first
// error.
func ReadLines(ctx context.Context, r Resource, f func(line string) error) error {
	rc, err := r.Open(ctx)
	if err != nil {
		return fmt.Errorf("open %s: %w", r, err)
	}
	defer rc.Close()
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := f(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", r, err)
	}
	return nil
}
