package planning

import (
	"context"

	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
)

// Engine generates and refines content plans. Implementations assemble the
// prompt, call an AI text provider, and defensively parse the reply into a
// plan; a malformed reply is a PlanGenerationError, never a half-populated
// plan.
type Engine interface {
	// Generate produces a new plan from source documents and contexts.
	// The returned plan is in ready status.
	Generate(ctx context.Context, req *GenerateRequest) (plan.ContentPlan, error)

	// Refine produces a replacement plan from an existing one plus
	// free-text instructions, appending one refinement history entry.
	// The input plan is never mutated; on failure the caller keeps it.
	Refine(ctx context.Context, req *RefineRequest) (plan.ContentPlan, error)
}

// GenerateRequest carries everything the initial generation needs.
type GenerateRequest struct {
	Sources    []wizard.ProcessedDocument
	Contexts   []plan.AIContext
	TemplateID string
	Options    GenerateOptions
}

// GenerateOptions selects the provider and model for the AI call. Empty
// fields fall back to configured defaults.
type GenerateOptions struct {
	Provider string
	Model    string
}

// RefineRequest carries one refinement pass over an existing plan.
type RefineRequest struct {
	Plan         plan.ContentPlan
	Instructions string
	Contexts     []plan.AIContext
	UserID       string
	Options      GenerateOptions
}
