package counter

import (
	"sort"

	"github.com/dbracewell/mango/tuple"
)

// MultiCounter is a two-level frequency map: first key to second key to
// count. Counters returned by Get are live views; mutating them mutates the
// MultiCounter. First keys whose counter is empty do not exist as far as
// Contains, Len, and FirstKeys are concerned.
type MultiCounter[K, V comparable] struct {
	counters map[K]*Counter[V]
}

// NewMulti creates a multi-counter, incrementing once for each given key
// pair.
func NewMulti[K, V comparable](pairs ...tuple.Pair[K, V]) *MultiCounter[K, V] {
	mc := &MultiCounter[K, V]{counters: map[K]*Counter[V]{}}
	for _, p := range pairs {
		mc.Increment(p.First, p.Second)
	}
	return mc
}

// Get returns the live counter for the first key, creating an empty one when
// absent.
func (mc *MultiCounter[K, V]) Get(first K) *Counter[V] {
	c, ok := mc.counters[first]
	if !ok {
		c = New[V]()
		mc.counters[first] = c
	}
	return c
}

// Count returns the count for the key pair.
func (mc *MultiCounter[K, V]) Count(first K, second V) float64 {
	if c, ok := mc.counters[first]; ok {
		return c.Get(second)
	}
	return 0
}

// Set assigns the counter for the first key, replacing any existing one.
func (mc *MultiCounter[K, V]) Set(first K, c *Counter[V]) *MultiCounter[K, V] {
	if c == nil || c.Len() == 0 {
		delete(mc.counters, first)
		return mc
	}
	mc.counters[first] = c
	return mc
}

// SetCount assigns the count for the key pair.
func (mc *MultiCounter[K, V]) SetCount(first K, second V, count float64) *MultiCounter[K, V] {
	mc.Get(first).Set(second, count)
	mc.compact(first)
	return mc
}

// Increment adds one to the count of the key pair.
func (mc *MultiCounter[K, V]) Increment(first K, second V) *MultiCounter[K, V] {
	return mc.IncrementBy(first, second, 1)
}

// IncrementBy adds amount to the count of the key pair.
func (mc *MultiCounter[K, V]) IncrementBy(first K, second V, amount float64) *MultiCounter[K, V] {
	mc.Get(first).IncrementBy(second, amount)
	mc.compact(first)
	return mc
}

func (mc *MultiCounter[K, V]) compact(first K) {
	if c, ok := mc.counters[first]; ok && c.Len() == 0 {
		delete(mc.counters, first)
	}
}

// Contains reports whether any count exists under the first key.
func (mc *MultiCounter[K, V]) Contains(first K) bool {
	c, ok := mc.counters[first]
	return ok && c.Len() > 0
}

// ContainsPair reports whether the key pair has a non-zero count.
func (mc *MultiCounter[K, V]) ContainsPair(first K, second V) bool {
	c, ok := mc.counters[first]
	return ok && c.Contains(second)
}

// Remove deletes the first key, returning its counter (nil when absent or
// empty).
func (mc *MultiCounter[K, V]) Remove(first K) *Counter[V] {
	c := mc.counters[first]
	delete(mc.counters, first)
	if c == nil || c.Len() == 0 {
		return nil
	}
	return c
}

// RemovePair deletes the key pair, returning its former count.
func (mc *MultiCounter[K, V]) RemovePair(first K, second V) float64 {
	c, ok := mc.counters[first]
	if !ok {
		return 0
	}
	count := c.Remove(second)
	mc.compact(first)
	return count
}

// Clear removes everything.
func (mc *MultiCounter[K, V]) Clear() {
	mc.counters = map[K]*Counter[V]{}
}

// Len returns the number of first keys with counts.
func (mc *MultiCounter[K, V]) Len() int {
	n := 0
	for _, c := range mc.counters {
		if c.Len() > 0 {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no counts exist.
func (mc *MultiCounter[K, V]) IsEmpty() bool { return mc.Len() == 0 }

// FirstKeys returns the first keys with counts, in unspecified order.
func (mc *MultiCounter[K, V]) FirstKeys() []K {
	keys := make([]K, 0, len(mc.counters))
	for k, c := range mc.counters {
		if c.Len() > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeyPairs returns every (first, second) pair in unspecified order.
func (mc *MultiCounter[K, V]) KeyPairs() []tuple.Pair[K, V] {
	var pairs []tuple.Pair[K, V]
	for k, c := range mc.counters {
		for _, v := range c.Items() {
			pairs = append(pairs, tuple.P(k, v))
		}
	}
	return pairs
}

// Sum returns the total of all counts.
func (mc *MultiCounter[K, V]) Sum() float64 {
	sum := 0.0
	for _, c := range mc.counters {
		sum += c.Sum()
	}
	return sum
}

// Average returns the mean of all counts.
func (mc *MultiCounter[K, V]) Average() float64 {
	n := 0
	sum := 0.0
	for _, c := range mc.counters {
		n += c.Len()
		sum += c.Sum()
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Merge adds the counts of the other multi-counter into this one.
func (mc *MultiCounter[K, V]) Merge(other *MultiCounter[K, V]) *MultiCounter[K, V] {
	if other == nil {
		return mc
	}
	for k, c := range other.counters {
		c.ForEach(func(item V, count float64) {
			mc.IncrementBy(k, item, count)
		})
	}
	return mc
}

// AdjustValues returns a copy with every count passed through f.
func (mc *MultiCounter[K, V]) AdjustValues(f func(float64) float64) *MultiCounter[K, V] {
	out := NewMulti[K, V]()
	for k, c := range mc.counters {
		out.Set(k, c.AdjustValues(f))
	}
	return out
}

// FilterByFirstKey returns a copy containing only first keys accepted by the
// predicate.
func (mc *MultiCounter[K, V]) FilterByFirstKey(pred func(K) bool) *MultiCounter[K, V] {
	out := NewMulti[K, V]()
	for k, c := range mc.counters {
		if pred(k) {
			out.Set(k, c.Copy())
		}
	}
	return out
}

// Copy returns a deep copy.
func (mc *MultiCounter[K, V]) Copy() *MultiCounter[K, V] {
	out := NewMulti[K, V]()
	for k, c := range mc.counters {
		out.Set(k, c.Copy())
	}
	return out
}

// KeyPairsByCount returns all key pairs sorted by count, descending unless
// ascending is true.
func (mc *MultiCounter[K, V]) KeyPairsByCount(ascending bool) []tuple.Pair[K, V] {
	pairs := mc.KeyPairs()
	sort.SliceStable(pairs, func(i, j int) bool {
		ci := mc.Count(pairs[i].First, pairs[i].Second)
		cj := mc.Count(pairs[j].First, pairs[j].Second)
		if ascending {
			return ci < cj
		}
		return ci > cj
	})
	return pairs
}
