package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPair(t *testing.T) {
	t.Parallel()
	p := P("a", 1)
	assert.Equal(t, "a", p.First)
	assert.Equal(t, 1, p.Second)
	assert.Equal(t, P(1, "a"), p.Swap())
	assert.Equal(t, "(a, 1)", p.String())

	a, b := p.Values()
	assert.Equal(t, "a", a)
	assert.Equal(t, 1, b)

	assert.Equal(t, P("a", 1), p)
	assert.NotEqual(t, P("a", 2), p)
}

func TestTripleQuad(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "(1, 2, 3)", T3(1, 2, 3).String())
	assert.Equal(t, "(1, 2, 3, 4)", T4(1, 2, 3, 4).String())
	assert.Equal(t, T3(1, "b", 2.5), T3(1, "b", 2.5))
}

func TestNTuple(t *testing.T) {
	t.Parallel()
	n := N("a", "b", "c")
	require.Equal(t, 3, n.Degree())
	assert.Equal(t, "b", n.Get(1))
	assert.Nil(t, n.Get(3))
	assert.Nil(t, n.Get(-1))
	assert.Equal(t, "(a, b, c)", n.String())
}

func TestNTupleShiftAppend(t *testing.T) {
	t.Parallel()
	n := N(1, 2, 3)
	assert.Equal(t, N(2, 3), n.ShiftLeft())
	assert.Equal(t, N(1, 2), n.ShiftRight())
	assert.Equal(t, N(1, 2, 3, 4), n.AppendRight(4))
	assert.Equal(t, N(0, 1, 2, 3), n.AppendLeft(0))
	// original is unchanged
	assert.Equal(t, N(1, 2, 3), n)

	assert.Equal(t, NTuple{}, N().ShiftLeft())
	assert.Equal(t, NTuple{}, N().ShiftRight())
}

func TestNTupleSlice(t *testing.T) {
	t.Parallel()
	n := N(1, 2, 3, 4)
	assert.Equal(t, N(2, 3), n.Slice(1, 3))
	assert.Equal(t, N(1, 2, 3, 4), n.Slice(-2, 9))
	assert.Equal(t, NTuple{}, n.Slice(3, 1))
}
