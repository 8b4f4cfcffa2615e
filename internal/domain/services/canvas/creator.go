package canvas

import (
	"context"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
)

// PageCreator runs the page-creation sequence: load template, duplicate,
// overwrite metadata, map the plan, validate, persist, notify. The whole
// sequence is all-or-nothing; a failure leaves nothing persisted.
type PageCreator interface {
	CreateFromTemplate(ctx context.Context, p plan.ContentPlan, templateID string, opts CreateOptions) (*canvas.Page, error)
}

// CreateOptions carries the page-level metadata overrides. An empty Title
// falls back to the plan's title.
type CreateOptions struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Status      canvas.PublishStatus `json:"status,omitempty"`
}

// EntityStore is the external storage collaborator for templates and
// pages. Duplication is atomic and owned by the store; the orchestrator
// only invokes it.
type EntityStore interface {
	// LoadTemplate fetches a template page by id; ErrNotFound when missing.
	LoadTemplate(ctx context.Context, templateID string) (*canvas.Page, error)

	// DuplicateTemplate deep-copies a template into an unsaved draft page
	// with fresh identifiers.
	DuplicateTemplate(ctx context.Context, tmpl *canvas.Page) (*canvas.Page, error)

	// SavePage persists the page and returns the stored representation.
	SavePage(ctx context.Context, page *canvas.Page) (*canvas.Page, error)
}

// PageValidator checks a page before it is persisted. An empty slice means
// the page is valid.
type PageValidator interface {
	Validate(ctx context.Context, page *canvas.Page) []domain.Violation
}
