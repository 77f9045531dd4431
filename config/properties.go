package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dbracewell/mango/resource"
)

// LoadProperties reads the property format: `key = value` assignments,
// full-line # comments, trailing-\ line continuation, `prefix { ... }`
// section blocks that flatten to dotted keys, and `@import path`
// directives resolved relative to the importing resource.
func (c *Config) LoadProperties(ctx context.Context, r resource.Resource) error {
	kv := map[string]string{}
	if err := parseProperties(ctx, r, kv); err != nil {
		return fmt.Errorf("load %s: %w", r, err)
	}
	c.store(kv)
	return nil
}

func parseProperties(ctx context.Context, r resource.Resource, kv map[string]string) error {
	var (
		prefixes []string
		pending  string
		cont     bool
		lineNo   int
		imports  []string
	)

	handle := func(line string) error {
		lineNo++
		if cont {
			line = pending + strings.TrimSpace(line)
			cont = false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			return nil
		}
		if strings.HasSuffix(trimmed, "\\") {
			pending = strings.TrimSuffix(trimmed, "\\")
			cont = true
			return nil
		}
		switch {
		case strings.HasPrefix(trimmed, "@import"):
			target := strings.TrimSpace(strings.TrimPrefix(trimmed, "@import"))
			if target == "" {
				return fmt.Errorf("line %d: @import needs a path", lineNo)
			}
			imports = append(imports, target)
		case strings.HasSuffix(trimmed, "{"):
			name := strings.TrimSpace(strings.TrimSuffix(trimmed, "{"))
			if name == "" {
				return fmt.Errorf("line %d: section needs a name", lineNo)
			}
			prefixes = append(prefixes, name)
		case trimmed == "}":
			if len(prefixes) == 0 {
				return fmt.Errorf("line %d: unmatched }", lineNo)
			}
			prefixes = prefixes[:len(prefixes)-1]
		default:
			eq := strings.Index(trimmed, "=")
			if eq < 0 {
				return fmt.Errorf("line %d: expected key = value, got %q", lineNo, trimmed)
			}
			key := strings.TrimSpace(trimmed[:eq])
			if key == "" {
				return fmt.Errorf("line %d: empty key", lineNo)
			}
			if len(prefixes) > 0 {
				key = strings.Join(prefixes, ".") + "." + key
			}
			kv[key] = strings.TrimSpace(trimmed[eq+1:])
		}
		return nil
	}

	if err := resource.ReadLines(ctx, r, handle); err != nil {
		return err
	}
	if cont {
		return fmt.Errorf("line %d: dangling continuation", lineNo)
	}
	if len(prefixes) > 0 {
		return fmt.Errorf("unclosed section %q", strings.Join(prefixes, "."))
	}
	for _, target := range imports {
		if err := parseProperties(ctx, resolveImport(r, target), kv); err != nil {
			return fmt.Errorf("import %s: %w", target, err)
		}
	}
	return nil
}

// resolveImport interprets the @import path relative to the directory of
// the importing resource when the path is not absolute.
func resolveImport(base resource.Resource, target string) resource.Resource {
	if filepath.IsAbs(target) {
		return resource.File(target)
	}
	dir := filepath.Dir(base.String())
	if dir == "." || dir == "" {
		return resource.File(target)
	}
	return resource.File(filepath.Join(dir, target))
}
