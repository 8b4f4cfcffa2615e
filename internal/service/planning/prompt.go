package planning

import (
	"encoding/json"
	"fmt"
	"strings"

	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
)

// systemPrompt frames every generation and refinement call. The response
// contract (single JSON object, fixed field names) is what the parser
// depends on.
const systemPrompt = `You are a content strategist. You turn source material into a structured content plan for a web page.

Respond with a single JSON object and nothing else. The object has these fields:
- "title": string, the page title
- "summary": string, a one-paragraph summary of the page
- "target_audience": string, who the page is written for
- "estimated_read_time": integer, minutes
- "sections": array of section objects, each with:
  - "title": string
  - "content": string, the body text for the section
  - "component_type": string, a suggested component such as "hero", "text", "image"
  - "children": optional array of nested section objects, same shape

Sections may nest. Do not wrap the JSON in markdown fences.`

// buildCorpus concatenates every source document's extracted text into one
// labeled block. Documents with no extracted text contribute nothing, so an
// empty result means the whole corpus is blank.
func buildCorpus(sources []wizard.ProcessedDocument) string {
	var b strings.Builder
	for _, doc := range sources {
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "Source: %s\n\n%s", doc.SourceName, text)
	}
	return b.String()
}

// buildGeneratePrompt assembles the user prompt for initial generation.
func buildGeneratePrompt(corpus, contextBlock string) string {
	var b strings.Builder
	b.WriteString("Create a content plan for a new page from the following source material.\n\n")
	if contextBlock != "" {
		b.WriteString("Additional context to respect:\n")
		b.WriteString(contextBlock)
		b.WriteString("\n\n")
	}
	b.WriteString("Source material:\n\n")
	b.WriteString(corpus)
	return b.String()
}

// buildRefinePrompt assembles the user prompt for one refinement pass. The
// existing plan travels as JSON so the model returns a complete
// replacement in the same shape.
func buildRefinePrompt(existing plan.ContentPlan, instructions, contextBlock string) (string, error) {
	current, err := json.Marshal(struct {
		Title             string         `json:"title"`
		Summary           string         `json:"summary"`
		TargetAudience    string         `json:"target_audience"`
		EstimatedReadTime int            `json:"estimated_read_time"`
		Sections          []plan.Section `json:"sections"`
	}{
		Title:             existing.Title,
		Summary:           existing.Summary,
		TargetAudience:    existing.TargetAudience,
		EstimatedReadTime: existing.EstimatedReadTime,
		Sections:          existing.Sections,
	})
	if err != nil {
		return "", fmt.Errorf("serializing current plan: %w", err)
	}

	var b strings.Builder
	b.WriteString("Revise the following content plan. Return the complete revised plan in the same JSON shape, not a diff.\n\n")
	if contextBlock != "" {
		b.WriteString("Additional context to respect:\n")
		b.WriteString(contextBlock)
		b.WriteString("\n\n")
	}
	b.WriteString("Current plan:\n")
	b.Write(current)
	b.WriteString("\n\nRevision instructions:\n")
	b.WriteString(instructions)
	return b.String(), nil
}
