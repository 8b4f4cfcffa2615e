package planning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pageforge/internal/domain/models/plan"
	"pageforge/internal/utils"
)

// planPayload is the wire shape the model is asked to return.
type planPayload struct {
	Title             string           `json:"title"`
	Summary           string           `json:"summary"`
	TargetAudience    string           `json:"target_audience"`
	EstimatedReadTime int              `json:"estimated_read_time"`
	Sections          []sectionPayload `json:"sections"`
}

type sectionPayload struct {
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	ComponentType   string            `json:"component_type"`
	ComponentConfig map[string]string `json:"component_config"`
	Children        []sectionPayload  `json:"children"`
}

// parsePlanResponse extracts and validates the JSON plan from the model's
// reply. The response shape is trusted but defensively validated: a
// missing title or empty section list is a parse failure, never a
// partially-populated plan.
func parsePlanResponse(text string) (*planPayload, error) {
	blob, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, fmt.Errorf("decoding plan JSON: %w", err)
	}

	err = validation.ValidateStruct(&payload,
		validation.Field(&payload.Title, validation.Required),
		validation.Field(&payload.Sections, validation.Required, validation.Length(1, 0)),
	)
	if err != nil {
		return nil, fmt.Errorf("incomplete plan: %w", err)
	}
	return &payload, nil
}

// extractJSON locates the outermost JSON object in the reply. Models
// sometimes wrap output in fences or preamble despite instructions.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return text[start : end+1], nil
}

// buildPlan turns a parsed payload into a content plan with fresh section
// ids, sibling orders by position, and a computed read time when the model
// omitted one.
func buildPlan(payload *planPayload) plan.ContentPlan {
	p := plan.ContentPlan{
		ID:                uuid.NewString(),
		Title:             payload.Title,
		Summary:           payload.Summary,
		TargetAudience:    payload.TargetAudience,
		EstimatedReadTime: payload.EstimatedReadTime,
		Sections:          buildSections(payload.Sections),
		Status:            plan.StatusReady,
		CreatedAt:         time.Now().UTC(),
	}
	if p.EstimatedReadTime <= 0 {
		p.EstimatedReadTime = utils.EstimateReadMinutes(p.TotalWordCount())
	}
	return p
}

func buildSections(payloads []sectionPayload) []plan.Section {
	sections := make([]plan.Section, 0, len(payloads))
	for i, sp := range payloads {
		sections = append(sections, plan.Section{
			ID:              uuid.NewString(),
			Title:           sp.Title,
			Content:         sp.Content,
			ComponentType:   sp.ComponentType,
			ComponentConfig: sp.ComponentConfig,
			Order:           i,
			Children:        buildSections(sp.Children),
		})
	}
	return sections
}
