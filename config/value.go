package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is the resolved value of a config key. The zero Value is unset.
type Value struct {
	key     string
	raw     string
	ok      bool
	missing bool
	err     error
}

// IsSet reports whether the key resolved to a value.
func (v Value) IsSet() bool { return v.ok }

// Or substitutes def when the key is unset. Resolution errors (bad
// reference, eval failure) are kept, not papered over.
func (v Value) Or(def string) Value {
	if !v.missing {
		return v
	}
	return Value{key: v.key, raw: def, ok: true}
}

func (v Value) AsString() (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.raw, nil
}

// MustString returns the value, or the empty string when unset.
func (v Value) MustString() string { return v.raw }

func (v Value) AsInt() (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.raw))
	if err != nil {
		return 0, fmt.Errorf("config: %q is not an int: %q", v.key, v.raw)
	}
	return n, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.err != nil {
		return 0, v.err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
	if err != nil {
		return 0, fmt.Errorf("config: %q is not a float: %q", v.key, v.raw)
	}
	return f, nil
}

func (v Value) AsBool() (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.raw))
	if err != nil {
		return false, fmt.Errorf("config: %q is not a bool: %q", v.key, v.raw)
	}
	return b, nil
}

func (v Value) AsDuration() (time.Duration, error) {
	if v.err != nil {
		return 0, v.err
	}
	d, err := time.ParseDuration(strings.TrimSpace(v.raw))
	if err != nil {
		return 0, fmt.Errorf("config: %q is not a duration: %q", v.key, v.raw)
	}
	return d, nil
}

// AsStringSlice splits the value on commas, trimming whitespace around each
// element. Empty elements are dropped.
func (v Value) AsStringSlice() ([]string, error) {
	if v.err != nil {
		return nil, v.err
	}
	var out []string
	for _, part := range strings.Split(v.raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// formatScalar renders loaded and computed scalars as config strings. Whole
// floats print without a fraction so eval results compare cleanly.
func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
