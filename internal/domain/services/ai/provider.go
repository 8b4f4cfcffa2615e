package ai

import "context"

// TextProvider is the interface every AI text-generation provider
// implements. The core owns prompt assembly and response parsing; the
// provider owns only the transport to the model.
type TextProvider interface {
	// Complete sends one structured prompt and returns the model's text.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g. "anthropic", "lorem").
	Name() string

	// SupportsModel reports whether the provider can serve the given model.
	SupportsModel(model string) bool
}

// CompletionRequest contains the parameters for one completion call.
type CompletionRequest struct {
	// System is the system prompt framing the task.
	System string

	// Prompt is the assembled user prompt: corpus, context block, and
	// output-format instructions.
	Prompt string

	// Model is the model identifier (e.g. "claude-haiku-4-5-20251001").
	Model string

	// MaxTokens bounds the response length; 0 means the provider default.
	MaxTokens int

	// Temperature controls sampling; 0 means the provider default.
	Temperature float32
}

// CompletionResponse contains the provider's reply.
type CompletionResponse struct {
	// Text is the full completion text.
	Text string

	// Model is the model actually used (may differ if aliased).
	Model string

	// InputTokens and OutputTokens report usage when the provider exposes it.
	InputTokens  int
	OutputTokens int

	// StopReason indicates why generation stopped (e.g. "end_turn").
	StopReason string
}
