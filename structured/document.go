package structured

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DumpJSON renders the map as an indented JSON document with sorted keys.
func DumpJSON(m map[string]any) (string, error) {
	var sb strings.Builder
	w := NewJSONWriter(&sb)
	if err := w.BeginDocument(); err != nil {
		return "", err
	}
	if err := writeMap(w, m); err != nil {
		return "", err
	}
	if err := w.EndDocument(); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// LoadJSON parses a JSON object. Numbers decode as float64.
func LoadJSON(s string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("load json: %w", err)
	}
	return m, nil
}

func writeMap(w Writer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeMember(w, k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeMember(w Writer, key string, v any) error {
	switch x := v.(type) {
	case map[string]any:
		if err := w.BeginObject(key); err != nil {
			return err
		}
		if err := writeMap(w, x); err != nil {
			return err
		}
		return w.EndObject()
	case []any:
		if err := w.BeginArray(key); err != nil {
			return err
		}
		for _, e := range x {
			switch nested := e.(type) {
			case map[string]any:
				if err := w.BeginObject(""); err != nil {
					return err
				}
				if err := writeMap(w, nested); err != nil {
					return err
				}
				if err := w.EndObject(); err != nil {
					return err
				}
			case []any:
				return fmt.Errorf("dump: arrays of arrays are not supported")
			default:
				if err := w.Value(e); err != nil {
					return err
				}
			}
		}
		return w.EndArray()
	default:
		return w.KeyValue(key, v)
	}
}
