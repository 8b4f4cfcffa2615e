package canvas

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"pageforge/internal/domain"
	models "pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
	canvasSvc "pageforge/internal/domain/services/canvas"
	mappingSvc "pageforge/internal/domain/services/mapping"
)

// fakeStore holds one template and records saves.
type fakeStore struct {
	template     *models.Page
	saved        []*models.Page
	saveErr      error
	duplicateErr error
}

func (f *fakeStore) LoadTemplate(_ context.Context, id string) (*models.Page, error) {
	if f.template == nil || f.template.ID != id {
		return nil, &domain.NotFoundError{Message: "template not found"}
	}
	return f.template, nil
}

func (f *fakeStore) DuplicateTemplate(_ context.Context, tmpl *models.Page) (*models.Page, error) {
	if f.duplicateErr != nil {
		return nil, f.duplicateErr
	}
	dup := tmpl.Duplicate()
	return &dup, nil
}

func (f *fakeStore) SavePage(_ context.Context, page *models.Page) (*models.Page, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, page)
	return page, nil
}

// passEngine copies the tree through and reports fixed counts.
type passEngine struct {
	unmapped int
	err      error
}

func (e *passEngine) Map(_ plan.ContentPlan, components []models.Component) (*mappingSvc.Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &mappingSvc.Result{Components: models.CloneTree(components), Filled: len(components), Unmapped: e.unmapped}, nil
}

type fakeValidator struct {
	violations []domain.Violation
}

func (v *fakeValidator) Validate(context.Context, *models.Page) []domain.Violation {
	return v.violations
}

type recordingSink struct {
	pages []*models.Page
}

func (r *recordingSink) StepChanged(*wizard.Session, wizard.Step, wizard.Step) {}

func (r *recordingSink) PageCreated(page *models.Page, _ plan.ContentPlan) {
	r.pages = append(r.pages, page)
}

func testTemplate() *models.Page {
	return &models.Page{
		ID:         "tmpl-1",
		Title:      "Landing template",
		IsTemplate: true,
		Components: []models.Component{
			{ID: "c1", Type: "hero", Inputs: []models.Input{{Name: "title"}}},
			{ID: "c2", Type: "text", Inputs: []models.Input{{Name: "body"}}},
		},
	}
}

func testPlan() plan.ContentPlan {
	return plan.ContentPlan{
		ID: "p1", Title: "From the plan", Status: plan.StatusReady,
		Sections: []plan.Section{{ID: "s1", Title: "Intro", Content: "words"}},
	}
}

func newCreator(store *fakeStore, engine *passEngine, validator *fakeValidator, sink *recordingSink) canvasSvc.PageCreator {
	return NewCreator(store, engine, validator, sink, slog.New(slog.DiscardHandler))
}

func TestCreateFromTemplate(t *testing.T) {
	store := &fakeStore{template: testTemplate()}
	sink := &recordingSink{}
	creator := newCreator(store, &passEngine{}, &fakeValidator{}, sink)

	page, err := creator.CreateFromTemplate(context.Background(), testPlan(), "tmpl-1", canvasSvc.CreateOptions{
		Status: models.PublishStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Title falls back to the plan's title when options leave it empty.
	if page.Title != "From the plan" {
		t.Errorf("title = %q", page.Title)
	}
	if page.ID == "tmpl-1" {
		t.Error("page must be a duplicate, not the template itself")
	}
	if page.IsTemplate {
		t.Error("created page flagged as template")
	}
	if len(store.saved) != 1 {
		t.Errorf("saved %d pages, want 1", len(store.saved))
	}
	if len(sink.pages) != 1 {
		t.Errorf("sink received %d pages, want 1", len(sink.pages))
	}
}

func TestCreateFromTemplateTitleOverride(t *testing.T) {
	store := &fakeStore{template: testTemplate()}
	creator := newCreator(store, &passEngine{}, &fakeValidator{}, &recordingSink{})

	page, err := creator.CreateFromTemplate(context.Background(), testPlan(), "tmpl-1", canvasSvc.CreateOptions{
		Title:       "Override",
		Description: "about page",
		Status:      models.PublishStatusPublished,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Title != "Override" || page.Description != "about page" || page.Status != models.PublishStatusPublished {
		t.Errorf("metadata not applied: %+v", page)
	}
}

func TestCreateFromTemplateMissingTemplate(t *testing.T) {
	store := &fakeStore{}
	creator := newCreator(store, &passEngine{}, &fakeValidator{}, &recordingSink{})

	_, err := creator.CreateFromTemplate(context.Background(), testPlan(), "missing", canvasSvc.CreateOptions{})
	if !errors.Is(err, domain.ErrCanvasCreation) {
		t.Errorf("error = %v, want ErrCanvasCreation", err)
	}
	var ccErr *domain.CanvasCreationError
	if !errors.As(err, &ccErr) || ccErr.PageTitle != "From the plan" {
		t.Errorf("error missing page title context: %v", err)
	}
	if len(store.saved) != 0 {
		t.Error("nothing must be persisted when the template is missing")
	}
}

func TestCreateFromTemplateValidationAborts(t *testing.T) {
	store := &fakeStore{template: testTemplate()}
	sink := &recordingSink{}
	validator := &fakeValidator{violations: []domain.Violation{{Path: "title", Message: "too long"}}}
	creator := newCreator(store, &passEngine{}, validator, sink)

	_, err := creator.CreateFromTemplate(context.Background(), testPlan(), "tmpl-1", canvasSvc.CreateOptions{})
	var ccErr *domain.CanvasCreationError
	if !errors.As(err, &ccErr) {
		t.Fatalf("error = %v, want CanvasCreationError", err)
	}
	if len(ccErr.Violations) != 1 || ccErr.Violations[0].Path != "title" {
		t.Errorf("violations = %+v", ccErr.Violations)
	}
	if len(store.saved) != 0 {
		t.Error("validation failure must abort before persistence")
	}
	if len(sink.pages) != 0 {
		t.Error("no event on failure")
	}
}

func TestCreateFromTemplateSaveFailure(t *testing.T) {
	store := &fakeStore{template: testTemplate(), saveErr: errors.New("db down")}
	sink := &recordingSink{}
	creator := newCreator(store, &passEngine{}, &fakeValidator{}, sink)

	_, err := creator.CreateFromTemplate(context.Background(), testPlan(), "tmpl-1", canvasSvc.CreateOptions{})
	if !errors.Is(err, domain.ErrCanvasCreation) {
		t.Errorf("error = %v, want ErrCanvasCreation", err)
	}
	if len(sink.pages) != 0 {
		t.Error("no event when save fails")
	}
}

func TestCreateFromTemplateDuplicateFailure(t *testing.T) {
	store := &fakeStore{template: testTemplate(), duplicateErr: errors.New("copy failed")}
	creator := newCreator(store, &passEngine{}, &fakeValidator{}, &recordingSink{})

	_, err := creator.CreateFromTemplate(context.Background(), testPlan(), "tmpl-1", canvasSvc.CreateOptions{})
	if !errors.Is(err, domain.ErrCanvasCreation) {
		t.Errorf("error = %v, want ErrCanvasCreation", err)
	}
	if len(store.saved) != 0 {
		t.Error("nothing must be persisted when duplication fails")
	}
}
