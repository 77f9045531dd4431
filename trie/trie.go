// Package trie provides a string-keyed prefix tree.
package trie

import "sort"

type node[V any] struct {
	children map[byte]*node[V]
	value    V
	present  bool
}

func newNode[V any]() *node[V] {
	return &node[V]{children: map[byte]*node[V]{}}
}

// Trie maps string keys to values and supports prefix queries. The zero
// value is not usable; construct with New.
type Trie[V any] struct {
	root *node[V]
	size int
}

// New creates an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{root: newNode[V]()}
}

// Len returns the number of keys.
func (t *Trie[V]) Len() int { return t.size }

// Put associates the value with the key, replacing any existing value.
func (t *Trie[V]) Put(key string, value V) {
	n := t.root
	for i := 0; i < len(key); i++ {
		child, ok := n.children[key[i]]
		if !ok {
			child = newNode[V]()
			n.children[key[i]] = child
		}
		n = child
	}
	if !n.present {
		t.size++
	}
	n.value = value
	n.present = true
}

// Get returns the value for the key. The second return is false when the
// key is absent.
func (t *Trie[V]) Get(key string) (V, bool) {
	n := t.find(key)
	if n == nil || !n.present {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether the key is present.
func (t *Trie[V]) Contains(key string) bool {
	n := t.find(key)
	return n != nil && n.present
}

// HasPrefix reports whether any key starts with the prefix.
func (t *Trie[V]) HasPrefix(prefix string) bool {
	return t.find(prefix) != nil
}

func (t *Trie[V]) find(key string) *node[V] {
	n := t.root
	for i := 0; i < len(key); i++ {
		child, ok := n.children[key[i]]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Delete removes the key, pruning branches left empty, and reports whether
// the key was present.
func (t *Trie[V]) Delete(key string) bool {
	var path []*node[V]
	n := t.root
	path = append(path, n)
	for i := 0; i < len(key); i++ {
		child, ok := n.children[key[i]]
		if !ok {
			return false
		}
		n = child
		path = append(path, n)
	}
	if !n.present {
		return false
	}
	var zero V
	n.present = false
	n.value = zero
	t.size--
	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.present || len(cur.children) > 0 {
			break
		}
		delete(path[i-1].children, key[i-1])
	}
	return true
}

// WithPrefix returns the keys starting with the prefix, in sorted order.
func (t *Trie[V]) WithPrefix(prefix string) []string {
	start := t.find(prefix)
	if start == nil {
		return nil
	}
	var keys []string
	collect(start, prefix, &keys)
	sort.Strings(keys)
	return keys
}

func collect[V any](n *node[V], key string, keys *[]string) {
	if n.present {
		*keys = append(*keys, key)
	}
	for b, child := range n.children {
		collect(child, key+string([]byte{b}), keys)
	}
}

// LongestMatch returns the longest key that is a prefix of s. The second
// return is false when no key prefixes s.
func (t *Trie[V]) LongestMatch(s string) (string, bool) {
	n := t.root
	best := -1
	if n.present {
		best = 0
	}
	for i := 0; i < len(s); i++ {
		child, ok := n.children[s[i]]
		if !ok {
			break
		}
		n = child
		if n.present {
			best = i + 1
		}
	}
	if best < 0 {
		return "", false
	}
	return s[:best], true
}

// Walk visits every key/value in sorted key order until f returns false.
func (t *Trie[V]) Walk(f func(key string, value V) bool) {
	walk(t.root, "", f)
}

func walk[V any](n *node[V], key string, f func(string, V) bool) bool {
	if n.present && !f(key, n.value) {
		return false
	}
	bytes := make([]int, 0, len(n.children))
	for b := range n.children {
		bytes = append(bytes, int(b))
	}
	sort.Ints(bytes)
	for _, b := range bytes {
		if !walk(n.children[byte(b)], key+string([]byte{byte(b)}), f) {
			return false
		}
	}
	return true
}
