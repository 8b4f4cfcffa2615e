package canvas

import (
	"context"
	"fmt"

	"pageforge/internal/domain"
	canvasModels "pageforge/internal/domain/models/canvas"
	canvasSvc "pageforge/internal/domain/services/canvas"
	"pageforge/internal/domain/repositories"
)

// repoStore adapts the page repository to the creator's EntityStore. A
// page that exists but is not flagged as a template reads as not found;
// templates are the only valid duplication source.
type repoStore struct {
	pages repositories.PageRepository
}

// NewRepoStore creates an entity store backed by the page repository.
func NewRepoStore(pages repositories.PageRepository) canvasSvc.EntityStore {
	return &repoStore{pages: pages}
}

func (s *repoStore) LoadTemplate(ctx context.Context, templateID string) (*canvasModels.Page, error) {
	page, err := s.pages.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !page.IsTemplate {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("template %s not found", templateID)}
	}
	return page, nil
}

func (s *repoStore) DuplicateTemplate(_ context.Context, tmpl *canvasModels.Page) (*canvasModels.Page, error) {
	dup := tmpl.Duplicate()
	return &dup, nil
}

func (s *repoStore) SavePage(ctx context.Context, page *canvasModels.Page) (*canvasModels.Page, error) {
	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}
