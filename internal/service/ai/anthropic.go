package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	aiSvc "pageforge/internal/domain/services/ai"
)

// anthropicProvider serves Claude models through the Anthropic API.
type anthropicProvider struct {
	client *anthropic.Client
}

// NewAnthropicProvider creates the Anthropic text provider.
func NewAnthropicProvider(apiKey string) (aiSvc.TextProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &anthropicProvider{client: &client}, nil
}

func (p *anthropicProvider) Name() string { return "anthropic" }

// SupportsModel reports whether the model is a Claude model.
func (p *anthropicProvider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

func (p *anthropicProvider) Complete(ctx context.Context, req *aiSvc.CompletionRequest) (*aiSvc.CompletionResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, fmt.Errorf("model %q is not supported by the anthropic provider", req.Model)
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Type: "text", Text: req.System},
		}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return &aiSvc.CompletionResponse{
		Text:         sb.String(),
		Model:        string(message.Model),
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		StopReason:   string(message.StopReason),
	}, nil
}
