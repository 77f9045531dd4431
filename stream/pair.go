package stream

// MapToPair transforms each value into a key/value pair using n goroutines.
func MapToPair[A any, K comparable, V any](in <-chan Try[A], n int, f func(A) (K, V, error)) <-chan Try[KV[K, V]] {
	return Map(in, n, func(a A) (KV[K, V], error) {
		k, v, err := f(a)
		if err != nil {
			return KV[K, V]{}, err
		}
		return KV[K, V]{Key: k, Value: v}, nil
	})
}

// Keys projects the keys of a pair stream.
func Keys[K comparable, V any](in <-chan Try[KV[K, V]]) <-chan Try[K] {
	return Map(in, 1, func(kv KV[K, V]) (K, error) {
		return kv.Key, nil
	})
}

// Values projects the values of a pair stream.
func Values[K comparable, V any](in <-chan Try[KV[K, V]]) <-chan Try[V] {
	return Map(in, 1, func(kv KV[K, V]) (V, error) {
		return kv.Value, nil
	})
}

// GroupByKey collects the values under each key, consuming the stream.
func GroupByKey[K comparable, V any](in <-chan Try[KV[K, V]]) (map[K][]V, error) {
	out := map[K][]V{}
	err := ForEach(in, 1, func(kv KV[K, V]) error {
		out[kv.Key] = append(out[kv.Key], kv.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReduceByKey combines the values under each key with f, consuming the
// stream.
func ReduceByKey[K comparable, V any](in <-chan Try[KV[K, V]], f func(V, V) (V, error)) (map[K]V, error) {
	out := map[K]V{}
	err := ForEach(in, 1, func(kv KV[K, V]) error {
		if cur, ok := out[kv.Key]; ok {
			merged, ferr := f(cur, kv.Value)
			if ferr != nil {
				return ferr
			}
			out[kv.Key] = merged
		} else {
			out[kv.Key] = kv.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupBy groups the stream's values by the key computed with f, consuming
// the stream.
func GroupBy[A any, K comparable](in <-chan Try[A], n int, f func(A) (K, error)) (map[K][]A, error) {
	pairs := MapToPair(in, n, func(a A) (K, A, error) {
		k, err := f(a)
		return k, a, err
	})
	return GroupByKey(pairs)
}

// CountByValue tallies how many times each value occurs, consuming the
// stream.
func CountByValue[A comparable](in <-chan Try[A]) (map[A]int64, error) {
	out := map[A]int64{}
	err := ForEach(in, 1, func(a A) error {
		out[a]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Join performs an inner hash join of two pair streams on their keys. The
// right stream is materialized first.
func Join[K comparable, V, W any](left <-chan Try[KV[K, V]], right <-chan Try[KV[K, W]]) (<-chan Try[KV[K, KV2[V, W]]], error) {
	rightByKey, err := GroupByKey(right)
	if err != nil {
		DrainNB(left)
		return nil, err
	}
	return FlatMap(left, 1, func(kv KV[K, V]) ([]KV[K, KV2[V, W]], error) {
		ws, ok := rightByKey[kv.Key]
		if !ok {
			return nil, nil
		}
		out := make([]KV[K, KV2[V, W]], len(ws))
		for i, w := range ws {
			out[i] = KV[K, KV2[V, W]]{Key: kv.Key, Value: KV2[V, W]{First: kv.Value, Second: w}}
		}
		return out, nil
	}), nil
}
