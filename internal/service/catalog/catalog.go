package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	catalogSvc "pageforge/internal/domain/services/catalog"
)

// staticCatalog serves component type labels from an in-memory table,
// optionally overridden by a YAML file. The mapping engine identifies
// components structurally, so this table only feeds UI dropdowns and can
// drift behind the template store without breaking anything.
type staticCatalog struct {
	types map[string]string
}

// defaultTypes covers the component types templates commonly carry.
var defaultTypes = map[string]string{
	"hero":      "Hero Banner",
	"card":      "Card",
	"text":      "Text Block",
	"rich_text": "Rich Text",
	"image":     "Image",
	"cta":       "Call to Action",
	"spacer":    "Spacer",
	"columns":   "Column Layout",
}

// NewStaticCatalog creates a catalog from the built-in table. When path is
// non-empty the YAML file replaces the table entirely.
func NewStaticCatalog(path string) (catalogSvc.ComponentCatalog, error) {
	types := defaultTypes
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading component catalog %q: %w", path, err)
		}
		loaded := make(map[string]string)
		if err := yaml.Unmarshal(raw, &loaded); err != nil {
			return nil, fmt.Errorf("parsing component catalog %q: %w", path, err)
		}
		if len(loaded) == 0 {
			return nil, fmt.Errorf("component catalog %q is empty", path)
		}
		types = loaded
	}
	return &staticCatalog{types: types}, nil
}

func (c *staticCatalog) ListComponentTypes(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(c.types))
	for k, v := range c.types {
		out[k] = v
	}
	return out, nil
}
