package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/repositories"
)

// PageRepository is an in-memory page store for development and tests.
type PageRepository struct {
	mu    sync.RWMutex
	pages map[string]canvas.Page
}

// NewPageRepository creates an empty in-memory page store.
func NewPageRepository() *PageRepository {
	return &PageRepository{pages: make(map[string]canvas.Page)}
}

var _ repositories.PageRepository = (*PageRepository)(nil)

func (r *PageRepository) Create(_ context.Context, page *canvas.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[page.ID]; exists {
		return fmt.Errorf("page %s already exists", page.ID)
	}
	stored := *page
	stored.Components = canvas.CloneTree(page.Components)
	r.pages[page.ID] = stored
	return nil
}

func (r *PageRepository) GetByID(_ context.Context, id string) (*canvas.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.pages[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("page %s not found", id)}
	}
	out := stored
	out.Components = canvas.CloneTree(stored.Components)
	return &out, nil
}

func (r *PageRepository) ListTemplates(_ context.Context) ([]canvas.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var templates []canvas.Page
	for _, stored := range r.pages {
		if !stored.IsTemplate {
			continue
		}
		out := stored
		out.Components = canvas.CloneTree(stored.Components)
		templates = append(templates, out)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Title < templates[j].Title })
	return templates, nil
}

func (r *PageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("page %s not found", id)}
	}
	delete(r.pages, id)
	return nil
}
