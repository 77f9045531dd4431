package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dbracewell/mango/resource"
)

// LoadYAML reads a YAML document and flattens nested maps into dotted
// keys. Lists of scalars become comma-joined values; lists of maps flatten
// with the element index as a path segment.
func (c *Config) LoadYAML(ctx context.Context, r resource.Resource) error {
	b, err := resource.ReadAll(ctx, r)
	if err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	kv := map[string]string{}
	if err := flatten("", doc, kv); err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	c.store(kv)
	return nil
}

// LoadJSON reads a JSON object the same way LoadYAML reads a document.
func (c *Config) LoadJSON(ctx context.Context, r resource.Resource) error {
	b, err := resource.ReadAll(ctx, r)
	if err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	kv := map[string]string{}
	if err := flatten("", doc, kv); err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	c.store(kv)
	return nil
}

func flatten(prefix string, node map[string]any, kv map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if err := flattenValue(key, v, kv); err != nil {
			return err
		}
	}
	return nil
}

func flattenValue(key string, v any, kv map[string]string) error {
	switch x := v.(type) {
	case map[string]any:
		return flatten(key, x, kv)
	case map[any]any:
		return fmt.Errorf("%s: map keys must be strings", key)
	case []any:
		if scalarsOnly(x) {
			parts := make([]string, len(x))
			for i, e := range x {
				parts[i] = formatScalar(e)
			}
			kv[key] = strings.Join(parts, ", ")
			return nil
		}
		for i, e := range x {
			if err := flattenValue(key+"."+strconv.Itoa(i), e, kv); err != nil {
				return err
			}
		}
		return nil
	default:
		kv[key] = formatScalar(x)
		return nil
	}
}

func scalarsOnly(list []any) bool {
	for _, e := range list {
		switch e.(type) {
		case map[string]any, map[any]any, []any:
			return false
		}
	}
	return true
}
