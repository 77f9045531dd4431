package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// KeyFor hashes an arbitrary argument into a compact cache key: the
// base64-encoded blake2b-256 of its JSON form.
func KeyFor(arg any) (string, error) {
	encoded, err := json.Marshal(arg)
	if err != nil {
		return "", fmt.Errorf("marshal key: %w", err)
	}
	hashBytes := blake2b.Sum256(encoded)
	return base64.RawURLEncoding.EncodeToString(hashBytes[:]), nil
}

// Memoize wraps f so repeated calls with equal (by JSON form) arguments are
// served from the cache. Errors from f are not cached.
func Memoize[A, R any](c Cache[string, R], f func(ctx context.Context, arg A) (R, error)) func(ctx context.Context, arg A) (R, error) {
	return func(ctx context.Context, arg A) (R, error) {
		key, err := KeyFor(arg)
		if err != nil {
			var zero R
			return zero, err
		}
		return c.GetOrLoad(ctx, key, func(ctx context.Context) (R, error) {
			return f(ctx, arg)
		})
	}
}
