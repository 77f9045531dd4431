package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	t.Parallel()
	var s Summary
	require.Equal(t, uint64(0), s.Count())
	assert.Equal(t, 0.0, s.Sum())
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.SampleVariance())
	assert.True(t, math.IsInf(s.Min(), 1))
	assert.True(t, math.IsInf(s.Max(), -1))
}

func TestAdd(t *testing.T) {
	t.Parallel()
	var s Summary
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}
	require.Equal(t, uint64(8), s.Count())
	assert.Equal(t, 40.0, s.Sum())
	assert.Equal(t, 5.0, s.Mean())
	assert.Equal(t, 2.0, s.Min())
	assert.Equal(t, 9.0, s.Max())
	assert.Equal(t, 2.0, s.PopulationStdDev())
	assert.InDelta(t, 2.138, s.SampleStdDev(), 0.001)
}

func TestCombine(t *testing.T) {
	t.Parallel()
	var all, a, b Summary
	for i, v := range []float64{1, 2, 3, 4, 5, 6} {
		all.Add(v)
		if i%2 == 0 {
			a.Add(v)
		} else {
			b.Add(v)
		}
	}
	a.Combine(b)
	require.Equal(t, all.Count(), a.Count())
	assert.Equal(t, all.Sum(), a.Sum())
	assert.Equal(t, all.Min(), a.Min())
	assert.Equal(t, all.Max(), a.Max())
	assert.InDelta(t, all.SampleVariance(), a.SampleVariance(), 1e-9)

	var empty Summary
	a.Combine(empty)
	assert.Equal(t, all.Count(), a.Count())
	empty.Combine(a)
	assert.Equal(t, all.Sum(), empty.Sum())
}

func TestSingleValue(t *testing.T) {
	t.Parallel()
	var s Summary
	s.Add(3)
	assert.Equal(t, 3.0, s.Min())
	assert.Equal(t, 3.0, s.Max())
	assert.Equal(t, 0.0, s.SampleVariance())
}
