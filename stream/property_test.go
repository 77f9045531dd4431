package stream

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestStreamProperties(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("OrderedMap preserves input order at any concurrency", prop.ForAll(
		func(xs []int, n uint8) bool {
			conc := int(n%8) + 1
			out, err := ToSlice(OrderedMap(FromSlice(xs), conc, func(v int) (int, error) {
				return v * 2, nil
			}))
			if err != nil || len(out) != len(xs) {
				return false
			}
			for i, v := range xs {
				if out[i] != v*2 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.UInt8(),
	))

	properties.Property("Map emits the same multiset regardless of concurrency", prop.ForAll(
		func(xs []int, n uint8) bool {
			conc := int(n%8) + 1
			out, err := ToSlice(Map(FromSlice(xs), conc, func(v int) (int, error) {
				return v + 1, nil
			}))
			if err != nil || len(out) != len(xs) {
				return false
			}
			want := make([]int, len(xs))
			for i, v := range xs {
				want[i] = v + 1
			}
			sort.Ints(want)
			sort.Ints(out)
			for i := range want {
				if out[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.UInt8(),
	))

	properties.Property("Filter then Count agrees with a direct tally", prop.ForAll(
		func(xs []int) bool {
			even := func(v int) (bool, error) { return v%2 == 0, nil }
			n, err := Count(Filter(FromSlice(xs), 4, even))
			if err != nil {
				return false
			}
			want := int64(0)
			for _, v := range xs {
				if v%2 == 0 {
					want++
				}
			}
			return n == want
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
