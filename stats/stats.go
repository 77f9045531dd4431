// Package stats provides streaming summary statistics over float64 values.
package stats

import "math"

// Summary accumulates count, sum, extrema, and sum of squares for a series
// of values. The zero value is ready to use. Summaries can be merged with
// Combine, which makes them usable as per-goroutine accumulators.
type Summary struct {
	count      uint64
	sum        float64
	sumSquares float64
	min        float64
	max        float64
}

// Add records a value.
func (s *Summary) Add(v float64) {
	if s.count == 0 {
		s.min = v
		s.max = v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.count++
	s.sum += v
	s.sumSquares += v * v
}

// Combine merges the other summary into this one.
func (s *Summary) Combine(other Summary) {
	if other.count == 0 {
		return
	}
	if s.count == 0 {
		*s = other
		return
	}
	s.min = math.Min(s.min, other.min)
	s.max = math.Max(s.max, other.max)
	s.count += other.count
	s.sum += other.sum
	s.sumSquares += other.sumSquares
}

// Count returns the number of values recorded.
func (s *Summary) Count() uint64 { return s.count }

// Sum returns the sum of the recorded values.
func (s *Summary) Sum() float64 { return s.sum }

// SumOfSquares returns the sum of the squares of the recorded values.
func (s *Summary) SumOfSquares() float64 { return s.sumSquares }

// Min returns the smallest recorded value, or +Inf when empty.
func (s *Summary) Min() float64 {
	if s.count == 0 {
		return math.Inf(1)
	}
	return s.min
}

// Max returns the largest recorded value, or -Inf when empty.
func (s *Summary) Max() float64 {
	if s.count == 0 {
		return math.Inf(-1)
	}
	return s.max
}

// Mean returns the arithmetic mean, or 0 when empty.
func (s *Summary) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// PopulationVariance returns the population variance, or 0 when empty.
func (s *Summary) PopulationVariance() float64 {
	if s.count == 0 {
		return 0
	}
	mean := s.Mean()
	v := s.sumSquares/float64(s.count) - mean*mean
	// guard against tiny negative results from floating point error
	return math.Max(v, 0)
}

// PopulationStdDev returns the population standard deviation.
func (s *Summary) PopulationStdDev() float64 {
	return math.Sqrt(s.PopulationVariance())
}

// SampleVariance returns the sample variance, or 0 when fewer than two
// values have been recorded.
func (s *Summary) SampleVariance() float64 {
	if s.count < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.sumSquares - float64(s.count)*mean*mean) / float64(s.count-1)
	return math.Max(v, 0)
}

// SampleStdDev returns the sample standard deviation.
func (s *Summary) SampleStdDev() float64 {
	return math.Sqrt(s.SampleVariance())
}
