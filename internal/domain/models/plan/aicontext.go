package plan

import (
	"sort"
	"strings"
)

// AIContext is an immutable named fact injected into generation and
// refinement prompts: brand voice, audience notes, style rules, and so on.
type AIContext struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Label    string            `json:"label"`
	Content  string            `json:"content"`
	Priority int               `json:"priority"` // higher sorts first
	Metadata map[string]string `json:"metadata,omitempty"`
	Enabled  bool              `json:"enabled"`
}

// CombineContexts builds the context block for a prompt: enabled contexts
// only, ordered by descending priority, concatenated with their labels.
// Returns "" when nothing is enabled.
func CombineContexts(contexts []AIContext) string {
	enabled := make([]AIContext, 0, len(contexts))
	for _, c := range contexts {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	if len(enabled) == 0 {
		return ""
	}

	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Priority > enabled[j].Priority })

	var b strings.Builder
	for i, c := range enabled {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if c.Label != "" {
			b.WriteString(c.Label)
			b.WriteString(":\n")
		}
		b.WriteString(c.Content)
	}
	return b.String()
}
