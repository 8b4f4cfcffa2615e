package canvas

import (
	"time"

	"github.com/google/uuid"
)

// PublishStatus is the publishing state of a page.
type PublishStatus string

const (
	PublishStatusDraft     PublishStatus = "draft"
	PublishStatusPublished PublishStatus = "published"
)

// Valid reports whether s is a known publish status.
func (s PublishStatus) Valid() bool {
	return s == PublishStatusDraft || s == PublishStatusPublished
}

// Page is a canvas page: metadata plus an ordered component forest. A
// template is just a page flagged as such; creating a page from a template
// clones the forest and fills its inputs from a content plan.
type Page struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      PublishStatus `json:"status"`
	IsTemplate  bool          `json:"is_template"`
	Components  []Component   `json:"components,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Duplicate deep-copies the page with fresh identifiers throughout the
// component forest. The copy is a plain draft page, never a template, and
// is not persisted until saved.
func (p Page) Duplicate() Page {
	now := time.Now().UTC()
	out := p
	out.ID = uuid.NewString()
	out.IsTemplate = false
	out.Status = PublishStatusDraft
	out.CreatedAt = now
	out.UpdatedAt = now
	out.Components = freshIDs(CloneTree(p.Components))
	return out
}

func freshIDs(components []Component) []Component {
	for i := range components {
		components[i].ID = uuid.NewString()
		components[i].Children = freshIDs(components[i].Children)
	}
	return components
}
