package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	loremgen "github.com/bozaro/golorem"

	aiSvc "pageforge/internal/domain/services/ai"
)

// loremProvider is a mock provider for development and tests. It answers
// every completion with a plan-shaped JSON document filled with lorem
// ipsum, so the whole wizard flow runs without an API key.
type loremProvider struct {
	generator *loremgen.Lorem
}

// NewLoremProvider creates the lorem mock provider.
func NewLoremProvider() aiSvc.TextProvider {
	return &loremProvider{generator: loremgen.New()}
}

func (p *loremProvider) Name() string { return "lorem" }

// SupportsModel accepts models named "lorem-*", e.g. "lorem-fast".
func (p *loremProvider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

func (p *loremProvider) Complete(ctx context.Context, req *aiSvc.CompletionRequest) (*aiSvc.CompletionResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, fmt.Errorf("model %q is not supported by the lorem provider", req.Model)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := make([]map[string]any, 3)
	for i := range sections {
		sections[i] = map[string]any{
			"title":          p.title(2, 4),
			"content":        p.generator.Paragraph(2, 4),
			"component_type": "",
		}
	}
	payload := map[string]any{
		"title":           p.title(3, 5),
		"summary":         p.generator.Sentence(8, 16),
		"target_audience": p.title(2, 3),
		"sections":        sections,
	}

	blob, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("building lorem response: %w", err)
	}
	text := string(blob)

	return &aiSvc.CompletionResponse{
		Text:         text,
		Model:        req.Model,
		InputTokens:  len(strings.Fields(req.Prompt)),
		OutputTokens: len(strings.Fields(text)),
		StopReason:   "end_turn",
	}, nil
}

// title builds a short phrase from a sentence, dropping the period.
func (p *loremProvider) title(min, max int) string {
	s := strings.TrimSuffix(p.generator.Sentence(min, max), ".")
	if s == "" {
		return "Untitled"
	}
	return s
}
