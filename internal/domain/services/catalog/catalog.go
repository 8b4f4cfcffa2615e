package catalog

import "context"

// ComponentCatalog supplies user-facing labels for component types. It is
// consulted only to build dropdowns; the mapping engine never reads it.
type ComponentCatalog interface {
	// ListComponentTypes returns component type id -> display label.
	ListComponentTypes(ctx context.Context) (map[string]string, error)
}
