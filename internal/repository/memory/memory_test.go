package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
)

func TestSessionSaveIsolatesCaller(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := wizard.NewSession("u1")
	session.SetPlan(plan.ContentPlan{
		ID:     "p1",
		Title:  "Original",
		Status: plan.StatusReady,
		Sections: []plan.Section{
			{ID: "s1", Title: "Intro", Content: "text"},
		},
	})
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's copy must not reach the store.
	session.ContentPlan.Sections[0].Title = "Mutated"

	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ContentPlan.Sections[0].Title != "Intro" {
		t.Fatalf("stored session shares memory with the caller: %q", got.ContentPlan.Sections[0].Title)
	}
}

func TestSessionGetMissing(t *testing.T) {
	repo := NewSessionRepository()
	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionDeleteStale(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	stale := wizard.NewSession("u1")
	stale.UpdatedAt = time.Now().UTC().Add(-48 * time.Hour)
	fresh := wizard.NewSession("u1")
	for _, s := range []*wizard.Session{stale, fresh} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	dropped, err := repo.DeleteStale(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("delete stale: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped session, got %d", dropped)
	}
	if _, err := repo.GetByID(ctx, stale.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("stale session survived")
	}
	if _, err := repo.GetByID(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh session dropped: %v", err)
	}
}

func TestPageRepositoryTemplates(t *testing.T) {
	repo := NewPageRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	pages := []canvas.Page{
		{ID: "t2", Title: "Zulu", IsTemplate: true, Status: canvas.PublishStatusDraft, CreatedAt: now, UpdatedAt: now},
		{ID: "t1", Title: "Alpha", IsTemplate: true, Status: canvas.PublishStatusDraft, CreatedAt: now, UpdatedAt: now},
		{ID: "p1", Title: "Plain", IsTemplate: false, Status: canvas.PublishStatusDraft, CreatedAt: now, UpdatedAt: now},
	}
	for i := range pages {
		if err := repo.Create(ctx, &pages[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 2 || templates[0].Title != "Alpha" || templates[1].Title != "Zulu" {
		t.Fatalf("unexpected templates: %+v", templates)
	}

	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
