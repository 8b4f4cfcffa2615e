package canvas

import (
	"context"
	"strings"
	"testing"

	models "pageforge/internal/domain/models/canvas"
)

func TestPageValidator(t *testing.T) {
	v := NewPageValidator()
	ctx := context.Background()

	t.Run("valid page", func(t *testing.T) {
		page := &models.Page{
			ID: "pg1", Title: "About", Status: models.PublishStatusDraft,
			Components: []models.Component{{ID: "c1", Type: "text"}},
		}
		if got := v.Validate(ctx, page); len(got) != 0 {
			t.Errorf("unexpected violations: %+v", got)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		page := &models.Page{ID: "pg1", Status: models.PublishStatusDraft}
		got := v.Validate(ctx, page)
		if len(got) != 1 || got[0].Path != "title" {
			t.Errorf("violations = %+v", got)
		}
	})

	t.Run("title too long", func(t *testing.T) {
		page := &models.Page{ID: "pg1", Title: strings.Repeat("x", 300), Status: models.PublishStatusDraft}
		if got := v.Validate(ctx, page); len(got) != 1 {
			t.Errorf("violations = %+v", got)
		}
	})

	t.Run("duplicate component ids", func(t *testing.T) {
		page := &models.Page{
			ID: "pg1", Title: "About", Status: models.PublishStatusDraft,
			Components: []models.Component{
				{ID: "c1", Type: "text"},
				{ID: "wrap", Type: "layout", Children: []models.Component{{ID: "c1", Type: "text"}}},
			},
		}
		got := v.Validate(ctx, page)
		if len(got) != 1 || !strings.Contains(got[0].Message, "duplicate") {
			t.Errorf("violations = %+v", got)
		}
	})

	t.Run("component missing type", func(t *testing.T) {
		page := &models.Page{
			ID: "pg1", Title: "About", Status: models.PublishStatusDraft,
			Components: []models.Component{{ID: "c1"}},
		}
		got := v.Validate(ctx, page)
		if len(got) != 1 || got[0].Path != "components[0]" {
			t.Errorf("violations = %+v", got)
		}
	})
}
