package canvas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pageforge/internal/domain"
	models "pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	canvasSvc "pageforge/internal/domain/services/canvas"
	"pageforge/internal/domain/services/events"
	mappingSvc "pageforge/internal/domain/services/mapping"
)

// creatorService sequences page creation: load template, duplicate,
// overwrite metadata, map the plan onto the duplicated tree, validate,
// persist, notify. Nothing is persisted until the final save, so failure
// at any earlier step leaves no partial page visible.
type creatorService struct {
	store     canvasSvc.EntityStore
	engine    mappingSvc.Engine
	validator canvasSvc.PageValidator
	sink      events.Sink
	logger    *slog.Logger
}

// NewCreator creates the page-creation orchestrator.
func NewCreator(
	store canvasSvc.EntityStore,
	engine mappingSvc.Engine,
	validator canvasSvc.PageValidator,
	sink events.Sink,
	logger *slog.Logger,
) canvasSvc.PageCreator {
	return &creatorService{
		store:     store,
		engine:    engine,
		validator: validator,
		sink:      sink,
		logger:    logger,
	}
}

func (s *creatorService) CreateFromTemplate(ctx context.Context, p plan.ContentPlan, templateID string, opts canvasSvc.CreateOptions) (*models.Page, error) {
	title := opts.Title
	if title == "" {
		title = p.Title
	}

	tmpl, err := s.store.LoadTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.CanvasCreationError{PageTitle: title, Err: fmt.Errorf("template %s not found", templateID)}
		}
		return nil, &domain.CanvasCreationError{PageTitle: title, Err: err}
	}

	page, err := s.store.DuplicateTemplate(ctx, tmpl)
	if err != nil {
		return nil, &domain.CanvasCreationError{PageTitle: title, Err: fmt.Errorf("duplicating template: %w", err)}
	}

	page.Title = title
	page.Description = opts.Description
	if opts.Status.Valid() {
		page.Status = opts.Status
	}

	result, err := s.engine.Map(p, page.Components)
	if err != nil {
		return nil, &domain.CanvasCreationError{PageTitle: title, Err: fmt.Errorf("mapping plan: %w", err)}
	}
	page.Components = result.Components

	if result.Unmapped > 0 {
		s.logger.Warn("plan sections left unmapped",
			"page_title", title,
			"template_id", templateID,
			"unmapped", result.Unmapped,
		)
	}

	if violations := s.validator.Validate(ctx, page); len(violations) > 0 {
		return nil, &domain.CanvasCreationError{PageTitle: title, Violations: violations}
	}

	saved, err := s.store.SavePage(ctx, page)
	if err != nil {
		return nil, &domain.CanvasCreationError{PageTitle: title, Err: fmt.Errorf("persisting page: %w", err)}
	}

	s.logger.Info("page created from template",
		"page_id", saved.ID,
		"template_id", templateID,
		"filled", result.Filled,
		"unmapped", result.Unmapped,
	)

	// Fire-and-forget: sink outcome never affects the returned page.
	s.sink.PageCreated(saved, p)

	return saved, nil
}
