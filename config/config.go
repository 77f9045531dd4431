// Package config provides layered key/value configuration loaded from
// property, YAML, and JSON resources. Values may reference other keys with
// ${key} interpolation or compute themselves with eval: expressions.
// Environment variables prefixed MANGO_ shadow everything else.
package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/dbracewell/mango/parser"
	"github.com/dbracewell/mango/resource"
)

// EnvPrefix is prepended to upper-cased, underscore-joined keys when
// checking the environment, e.g. stream.parallelism becomes
// MANGO_STREAM_PARALLELISM.
const EnvPrefix = "MANGO_"

// evalPrefix marks a raw value as an expression to evaluate on access.
const evalPrefix = "eval:"

// Config is a set of dotted keys and string values. Later loads override
// earlier ones, Set overrides loads, and the environment overrides both.
// Safe for concurrent use.
type Config struct {
	mu     sync.RWMutex
	loaded map[string]string
	set    map[string]string
}

func New() *Config {
	return &Config{
		loaded: map[string]string{},
		set:    map[string]string{},
	}
}

// Load reads the resource, dispatching on its extension: .yaml/.yml,
// .json, anything else is treated as the property format.
func (c *Config) Load(ctx context.Context, r resource.Resource) error {
	switch strings.ToLower(path.Ext(r.String())) {
	case ".yaml", ".yml":
		return c.LoadYAML(ctx, r)
	case ".json":
		return c.LoadJSON(ctx, r)
	default:
		return c.LoadProperties(ctx, r)
	}
}

// Set assigns a value for the key, overriding any loaded value.
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set[key] = value
}

// Has reports whether the key resolves from the environment, Set, or a
// load.
func (c *Config) Has(key string) bool {
	_, ok := c.raw(key)
	return ok
}

// Get returns the value for the key. Interpolation and expression
// evaluation happen lazily; errors surface from the Value accessors.
func (c *Config) Get(key string) Value {
	return c.get(key, map[string]bool{key: true})
}

// get resolves key with the caller's visiting set so that cycles spanning
// ${} references and eval: variables are both caught.
func (c *Config) get(key string, visiting map[string]bool) Value {
	raw, ok := c.raw(key)
	if !ok {
		return Value{key: key, missing: true, err: fmt.Errorf("config: %q not set", key)}
	}
	resolved, err := c.resolve(raw, visiting)
	if err != nil {
		return Value{key: key, err: fmt.Errorf("resolve %q: %w", key, err)}
	}
	return Value{key: key, raw: resolved, ok: true}
}

// Match returns the keys accepted by the predicate, sorted. Environment
// overrides are not enumerable and do not appear.
func (c *Config) Match(f func(key string) bool) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, m := range []map[string]string{c.loaded, c.set} {
		for k := range m {
			if !seen[k] && f(k) {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

// MatchPrefix returns the keys under the dotted prefix, sorted.
func (c *Config) MatchPrefix(prefix string) []string {
	dotted := prefix
	if dotted != "" && !strings.HasSuffix(dotted, ".") {
		dotted += "."
	}
	return c.Match(func(k string) bool {
		return k == prefix || strings.HasPrefix(k, dotted)
	})
}

// raw returns the unresolved value for key, applying the precedence
// env > Set > loaded.
func (c *Config) raw(key string) (string, bool) {
	if v, ok := os.LookupEnv(envName(key)); ok {
		return v, true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.set[key]; ok {
		return v, true
	}
	v, ok := c.loaded[key]
	return v, ok
}

func envName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// resolve expands ${key} references and evaluates eval: expressions.
// visiting guards against reference cycles.
func (c *Config) resolve(raw string, visiting map[string]bool) (string, error) {
	interpolated, err := c.interpolate(raw, visiting)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(interpolated, evalPrefix) {
		return interpolated, nil
	}
	expr := strings.TrimPrefix(interpolated, evalPrefix)
	var lookupErr error
	ev := parser.NewEvaluator(func(name string) (any, bool) {
		if visiting[name] {
			lookupErr = fmt.Errorf("reference cycle through %q", name)
			return nil, false
		}
		visiting[name] = true
		v := c.get(name, visiting)
		delete(visiting, name)
		if v.err != nil {
			lookupErr = v.err
			return nil, false
		}
		return v.raw, true
	})
	result, err := ev.Eval(expr)
	if lookupErr != nil {
		return "", fmt.Errorf("eval %q: %w", expr, lookupErr)
	}
	if err != nil {
		return "", fmt.Errorf("eval %q: %w", expr, err)
	}
	return formatScalar(result), nil
}

func (c *Config) interpolate(raw string, visiting map[string]bool) (string, error) {
	var b strings.Builder
	for {
		start := strings.Index(raw, "${")
		if start < 0 {
			b.WriteString(raw)
			return b.String(), nil
		}
		end := strings.Index(raw[start:], "}")
		if end < 0 {
			return "", fmt.Errorf("unterminated reference in %q", raw)
		}
		end += start
		ref := raw[start+2 : end]
		if visiting[ref] {
			return "", fmt.Errorf("reference cycle through %q", ref)
		}
		inner, ok := c.raw(ref)
		if !ok {
			return "", fmt.Errorf("reference to unset key %q", ref)
		}
		visiting[ref] = true
		resolved, err := c.resolve(inner, visiting)
		delete(visiting, ref)
		if err != nil {
			return "", err
		}
		b.WriteString(raw[:start])
		b.WriteString(resolved)
		raw = raw[end+1:]
	}
}

func (c *Config) store(kv map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range kv {
		c.loaded[k] = v
	}
}
