// Package tuple provides small fixed-arity value containers and a
// variable-arity NTuple.
package tuple

import (
	"fmt"
	"strings"
)

// Pair is a two-element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// P constructs a Pair.
func P[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// Swap returns the pair with its elements exchanged.
func (p Pair[A, B]) Swap() Pair[B, A] {
	return Pair[B, A]{First: p.Second, Second: p.First}
}

// Values returns both elements.
func (p Pair[A, B]) Values() (A, B) {
	return p.First, p.Second
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Triple is a three-element tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// T3 constructs a Triple.
func T3[A, B, C any](first A, second B, third C) Triple[A, B, C] {
	return Triple[A, B, C]{First: first, Second: second, Third: third}
}

func (t Triple[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.First, t.Second, t.Third)
}

// Quad is a four-element tuple.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// T4 constructs a Quad.
func T4[A, B, C, D any](first A, second B, third C, fourth D) Quad[A, B, C, D] {
	return Quad[A, B, C, D]{First: first, Second: second, Third: third, Fourth: fourth}
}

func (q Quad[A, B, C, D]) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", q.First, q.Second, q.Third, q.Fourth)
}

// NTuple is a tuple of arbitrary degree.
type NTuple []any

// N constructs an NTuple from the given values.
func N(values ...any) NTuple {
	t := make(NTuple, len(values))
	copy(t, values)
	return t
}

// Degree returns the number of elements.
func (n NTuple) Degree() int { return len(n) }

// Get returns the i-th element, or nil when out of range.
func (n NTuple) Get(i int) any {
	if i < 0 || i >= len(n) {
		return nil
	}
	return n[i]
}

// Slice returns the sub-tuple [start, end). Bounds are clamped.
func (n NTuple) Slice(start, end int) NTuple {
	if start < 0 {
		start = 0
	}
	if end > len(n) {
		end = len(n)
	}
	if start >= end {
		return NTuple{}
	}
	return N(n[start:end]...)
}

// AppendRight returns a new tuple with the value added as the last element.
func (n NTuple) AppendRight(v any) NTuple {
	out := make(NTuple, 0, len(n)+1)
	out = append(out, n...)
	return append(out, v)
}

// AppendLeft returns a new tuple with the value added as the first element.
func (n NTuple) AppendLeft(v any) NTuple {
	out := make(NTuple, 0, len(n)+1)
	out = append(out, v)
	return append(out, n...)
}

// ShiftLeft returns the tuple without its first element.
func (n NTuple) ShiftLeft() NTuple {
	if len(n) == 0 {
		return NTuple{}
	}
	return N(n[1:]...)
}

// ShiftRight returns the tuple without its last element.
func (n NTuple) ShiftRight() NTuple {
	if len(n) == 0 {
		return NTuple{}
	}
	return N(n[:len(n)-1]...)
}

func (n NTuple) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
