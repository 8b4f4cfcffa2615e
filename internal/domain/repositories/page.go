package repositories

import (
	"context"

	"pageforge/internal/domain/models/canvas"
)

// PageRepository is the store for pages and templates. Templates are pages
// flagged as such; both live in the same table.
type PageRepository interface {
	// Create persists a new page.
	Create(ctx context.Context, page *canvas.Page) error

	// GetByID retrieves a page or template; ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*canvas.Page, error)

	// ListTemplates returns all template pages ordered by title.
	ListTemplates(ctx context.Context) ([]canvas.Page, error)

	// Delete removes a page.
	Delete(ctx context.Context, id string) error
}
