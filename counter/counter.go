// Package counter provides frequency maps with aggregate statistics over
// their values, in single-key (Counter) and two-key (MultiCounter) forms.
package counter

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/dbracewell/mango/stats"
	"github.com/dbracewell/mango/tuple"
)

// Counter is an object-to-float64 frequency map. Items whose count reaches
// exactly zero are evicted, so Items never reports zero-count keys. The sum
// of all counts is maintained incrementally. The zero value is not usable;
// construct with New.
type Counter[T comparable] struct {
	counts map[T]float64
	sum    float64
}

// New creates a counter, incrementing once for each given item.
func New[T comparable](items ...T) *Counter[T] {
	c := &Counter[T]{counts: map[T]float64{}}
	c.IncrementAll(items)
	return c
}

// FromMap creates a counter from item counts.
func FromMap[T comparable](m map[T]float64) *Counter[T] {
	c := &Counter[T]{counts: make(map[T]float64, len(m))}
	for k, v := range m {
		c.Set(k, v)
	}
	return c
}

// Get returns the count of the item, zero when absent.
func (c *Counter[T]) Get(item T) float64 { return c.counts[item] }

// Contains reports whether the item has a non-zero count.
func (c *Counter[T]) Contains(item T) bool {
	_, ok := c.counts[item]
	return ok
}

// Len returns the number of distinct items.
func (c *Counter[T]) Len() int { return len(c.counts) }

// Sum returns the total of all counts.
func (c *Counter[T]) Sum() float64 { return c.sum }

// Set assigns the count of the item, evicting it when count is zero.
func (c *Counter[T]) Set(item T, count float64) *Counter[T] {
	old, ok := c.counts[item]
	if ok {
		c.sum -= old
	}
	if count == 0 {
		delete(c.counts, item)
	} else {
		c.counts[item] = count
		c.sum += count
	}
	return c
}

// Increment adds one to the item's count.
func (c *Counter[T]) Increment(item T) *Counter[T] { return c.IncrementBy(item, 1) }

// IncrementBy adds amount to the item's count.
func (c *Counter[T]) IncrementBy(item T, amount float64) *Counter[T] {
	return c.Set(item, c.counts[item]+amount)
}

// IncrementAll adds one to the count of every given item.
func (c *Counter[T]) IncrementAll(items []T) *Counter[T] {
	for _, item := range items {
		c.IncrementBy(item, 1)
	}
	return c
}

// Decrement subtracts one from the item's count.
func (c *Counter[T]) Decrement(item T) *Counter[T] { return c.IncrementBy(item, -1) }

// DecrementBy subtracts amount from the item's count.
func (c *Counter[T]) DecrementBy(item T, amount float64) *Counter[T] {
	return c.IncrementBy(item, -amount)
}

// Remove deletes the item, returning its former count.
func (c *Counter[T]) Remove(item T) float64 {
	count := c.counts[item]
	c.Set(item, 0)
	return count
}

// RemoveAll deletes every given item.
func (c *Counter[T]) RemoveAll(items []T) *Counter[T] {
	for _, item := range items {
		c.Remove(item)
	}
	return c
}

// Clear removes all items.
func (c *Counter[T]) Clear() {
	c.counts = map[T]float64{}
	c.sum = 0
}

// Merge adds the counts of the other counter into this one.
func (c *Counter[T]) Merge(other *Counter[T]) *Counter[T] {
	if other == nil {
		return c
	}
	for item, count := range other.counts {
		c.IncrementBy(item, count)
	}
	return c
}

// MergeMap adds the given item counts into this counter.
func (c *Counter[T]) MergeMap(m map[T]float64) *Counter[T] {
	for item, count := range m {
		c.IncrementBy(item, count)
	}
	return c
}

// Items returns the distinct items in unspecified order.
func (c *Counter[T]) Items() []T {
	items := make([]T, 0, len(c.counts))
	for item := range c.counts {
		items = append(items, item)
	}
	return items
}

// Values returns the counts in unspecified order.
func (c *Counter[T]) Values() []float64 {
	values := make([]float64, 0, len(c.counts))
	for _, count := range c.counts {
		values = append(values, count)
	}
	return values
}

// AsMap returns a copy of the underlying item counts.
func (c *Counter[T]) AsMap() map[T]float64 {
	m := make(map[T]float64, len(c.counts))
	for item, count := range c.counts {
		m[item] = count
	}
	return m
}

// ForEach invokes f for every item and count.
func (c *Counter[T]) ForEach(f func(item T, count float64)) {
	for item, count := range c.counts {
		f(item, count)
	}
}

// Copy returns a deep copy of the counter.
func (c *Counter[T]) Copy() *Counter[T] {
	return FromMap(c.counts)
}

// Average returns the mean count.
func (c *Counter[T]) Average() float64 { return c.summary().Mean() }

// Magnitude returns the L2 norm of the counts.
func (c *Counter[T]) Magnitude() float64 {
	return math.Sqrt(c.summary().SumOfSquares())
}

// MaximumCount returns the largest count, or -Inf when empty.
func (c *Counter[T]) MaximumCount() float64 { return c.summary().Max() }

// MinimumCount returns the smallest count, or +Inf when empty.
func (c *Counter[T]) MinimumCount() float64 { return c.summary().Min() }

// StandardDeviation returns the sample standard deviation of the counts.
func (c *Counter[T]) StandardDeviation() float64 { return c.summary().SampleStdDev() }

func (c *Counter[T]) summary() *stats.Summary {
	s := new(stats.Summary)
	for _, count := range c.counts {
		s.Add(count)
	}
	return s
}

// ItemsByCount returns the items sorted by count, descending unless
// ascending is true. Ties are broken arbitrarily but deterministically for a
// given counter state.
func (c *Counter[T]) ItemsByCount(ascending bool) []T {
	items := c.Items()
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := c.counts[items[i]], c.counts[items[j]]
		if ascending {
			return ci < cj
		}
		return ci > cj
	})
	return items
}

// TopN returns a new counter of the n highest-count items.
func (c *Counter[T]) TopN(n int) *Counter[T] {
	return c.take(c.ItemsByCount(false), n)
}

// BottomN returns a new counter of the n lowest-count items.
func (c *Counter[T]) BottomN(n int) *Counter[T] {
	return c.take(c.ItemsByCount(true), n)
}

func (c *Counter[T]) take(ordered []T, n int) *Counter[T] {
	if n > len(ordered) {
		n = len(ordered)
	}
	out := New[T]()
	for _, item := range ordered[:n] {
		out.Set(item, c.counts[item])
	}
	return out
}

// AdjustValues returns a copy with every count passed through f.
func (c *Counter[T]) AdjustValues(f func(float64) float64) *Counter[T] {
	out := New[T]()
	for item, count := range c.counts {
		out.Set(item, f(count))
	}
	return out
}

// AdjustValuesSelf passes every count through f in place.
func (c *Counter[T]) AdjustValuesSelf(f func(float64) float64) *Counter[T] {
	for item, count := range c.counts {
		c.Set(item, f(count))
	}
	return c
}

// DivideBySum normalizes the counts to sum to one. A zero-sum counter is
// left unchanged.
func (c *Counter[T]) DivideBySum() *Counter[T] {
	if c.sum == 0 {
		return c
	}
	sum := c.sum
	return c.AdjustValuesSelf(func(v float64) float64 { return v / sum })
}

// FilterByKey returns a copy containing only items accepted by the predicate.
func (c *Counter[T]) FilterByKey(pred func(T) bool) *Counter[T] {
	out := New[T]()
	for item, count := range c.counts {
		if pred(item) {
			out.Set(item, count)
		}
	}
	return out
}

// FilterByValue returns a copy containing only items whose count is accepted
// by the predicate.
func (c *Counter[T]) FilterByValue(pred func(float64) bool) *Counter[T] {
	out := New[T]()
	for item, count := range c.counts {
		if pred(count) {
			out.Set(item, count)
		}
	}
	return out
}

// Sample draws a random item with probability proportional to its count.
// The second return is false when the counter is empty.
func (c *Counter[T]) Sample(rnd *rand.Rand) (T, bool) {
	var zero T
	if len(c.counts) == 0 {
		return zero, false
	}
	target := rnd.Float64() * c.sum
	running := 0.0
	var last T
	for item, count := range c.counts {
		running += count
		last = item
		if target <= running {
			return item, true
		}
	}
	return last, true
}

func (c *Counter[T]) String() string {
	parts := make([]string, 0, len(c.counts))
	for _, item := range c.ItemsByCount(false) {
		parts = append(parts, fmt.Sprintf("%v:%v", item, c.counts[item]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MapKeys returns a new counter whose items are transformed by f; counts of
// items mapping to the same key are summed.
func MapKeys[T, R comparable](c *Counter[T], f func(T) R) *Counter[R] {
	out := New[R]()
	c.ForEach(func(item T, count float64) {
		out.IncrementBy(f(item), count)
	})
	return out
}

// FromPairs creates a counter incrementing once per pair of (item, amount)
// tuples.
func FromPairs[T comparable](pairs []tuple.Pair[T, float64]) *Counter[T] {
	c := New[T]()
	for _, p := range pairs {
		c.IncrementBy(p.First, p.Second)
	}
	return c
}
