// Package index provides a bidirectional mapping between items and dense
// integer ids assigned in insertion order.
package index

// Index assigns each distinct item a stable id starting at zero. The zero
// value is not usable; construct with New.
type Index[T comparable] struct {
	items []T
	ids   map[T]int
}

// New creates an index, adding the given items in order.
func New[T comparable](items ...T) *Index[T] {
	idx := &Index[T]{ids: map[T]int{}}
	for _, item := range items {
		idx.Add(item)
	}
	return idx
}

// Add returns the id for the item, assigning the next id when the item is
// new.
func (idx *Index[T]) Add(item T) int {
	if id, ok := idx.ids[item]; ok {
		return id
	}
	id := len(idx.items)
	idx.items = append(idx.items, item)
	idx.ids[item] = id
	return id
}

// ID returns the id of the item, or -1 when absent.
func (idx *Index[T]) ID(item T) int {
	if id, ok := idx.ids[item]; ok {
		return id
	}
	return -1
}

// Get returns the item with the given id. The second return is false when
// the id is out of range.
func (idx *Index[T]) Get(id int) (T, bool) {
	if id < 0 || id >= len(idx.items) {
		var zero T
		return zero, false
	}
	return idx.items[id], true
}

// Contains reports whether the item has been indexed.
func (idx *Index[T]) Contains(item T) bool {
	_, ok := idx.ids[item]
	return ok
}

// Len returns the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// Items returns the items in id order. The returned slice is a copy.
func (idx *Index[T]) Items() []T {
	out := make([]T, len(idx.items))
	copy(out, idx.items)
	return out
}

// Copy returns a deep copy of the index.
func (idx *Index[T]) Copy() *Index[T] {
	return New(idx.items...)
}
