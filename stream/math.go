package stream

import "github.com/dbracewell/mango/stats"

// MapToFloat64 transforms each value into a float64 using n goroutines.
func MapToFloat64[A any](in <-chan Try[A], n int, f func(A) (float64, error)) <-chan Try[float64] {
	return Map(in, n, f)
}

// Sum totals a float64 stream.
func Sum(in <-chan Try[float64]) (float64, error) {
	return Fold(in, 0.0, func(acc, v float64) (float64, error) {
		return acc + v, nil
	})
}

// Stats summarizes a float64 stream.
func Stats(in <-chan Try[float64]) (stats.Summary, error) {
	var s stats.Summary
	err := ForEach(in, 1, func(v float64) error {
		s.Add(v)
		return nil
	})
	if err != nil {
		return stats.Summary{}, err
	}
	return s, nil
}

// Mean averages a float64 stream.
func Mean(in <-chan Try[float64]) (float64, error) {
	s, err := Stats(in)
	if err != nil {
		return 0, err
	}
	return s.Mean(), nil
}

// Min returns the smallest value of a float64 stream; the bool is false
// when empty.
func Min(in <-chan Try[float64]) (float64, bool, error) {
	s, err := Stats(in)
	if err != nil {
		return 0, false, err
	}
	if s.Count() == 0 {
		return 0, false, nil
	}
	return s.Min(), true, nil
}

// Max returns the largest value of a float64 stream; the bool is false when
// empty.
func Max(in <-chan Try[float64]) (float64, bool, error) {
	s, err := Stats(in)
	if err != nil {
		return 0, false, err
	}
	if s.Count() == 0 {
		return 0, false, nil
	}
	return s.Max(), true, nil
}
