package planning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pageforge/internal/config"
	"pageforge/internal/domain"
	"pageforge/internal/domain/models/plan"
	aiSvc "pageforge/internal/domain/services/ai"
	planningSvc "pageforge/internal/domain/services/planning"
)

// ProviderResolver looks up a text provider by name. Implemented by the
// AI provider registry; an interface here keeps the engine testable with
// a stub provider.
type ProviderResolver interface {
	Resolve(provider string) (aiSvc.TextProvider, error)
}

// Defaults selects the provider/model used when a request leaves them
// empty, and caps refinement iterations.
type Defaults struct {
	Provider                string
	Model                   string
	MaxRefinementIterations int
}

type engineService struct {
	providers ProviderResolver
	defaults  Defaults
	logger    *slog.Logger
}

// NewEngine creates the plan generation/refinement engine.
func NewEngine(providers ProviderResolver, defaults Defaults, logger *slog.Logger) planningSvc.Engine {
	if defaults.MaxRefinementIterations <= 0 {
		defaults.MaxRefinementIterations = config.DefaultMaxRefinementIterations
	}
	return &engineService{
		providers: providers,
		defaults:  defaults,
		logger:    logger,
	}
}

func (s *engineService) Generate(ctx context.Context, req *planningSvc.GenerateRequest) (plan.ContentPlan, error) {
	provider, model := s.resolveOptions(req.Options)

	corpus := buildCorpus(req.Sources)
	if corpus == "" {
		return plan.ContentPlan{}, &domain.PlanGenerationError{
			Provider: provider, Model: model,
			Reason: "no extracted text in any source document",
		}
	}

	prompt := buildGeneratePrompt(corpus, plan.CombineContexts(req.Contexts))

	payload, err := s.complete(ctx, provider, model, prompt)
	if err != nil {
		return plan.ContentPlan{}, err
	}

	generated := buildPlan(payload)
	s.logger.Info("content plan generated",
		"plan_id", generated.ID,
		"provider", provider,
		"model", model,
		"sections", generated.TotalSectionCount(),
		"words", generated.TotalWordCount(),
	)
	return generated, nil
}

func (s *engineService) Refine(ctx context.Context, req *planningSvc.RefineRequest) (plan.ContentPlan, error) {
	provider, model := s.resolveOptions(req.Options)

	if strings.TrimSpace(req.Instructions) == "" {
		return plan.ContentPlan{}, &domain.PlanGenerationError{
			Provider: provider, Model: model,
			Reason: "refinement instructions are empty",
		}
	}
	if !req.Plan.Status.CanRefine() {
		return plan.ContentPlan{}, &domain.PlanGenerationError{
			Provider: provider, Model: model,
			Reason: fmt.Sprintf("plan in status %s cannot be refined", req.Plan.Status),
		}
	}
	if !req.Plan.CanRefine(s.defaults.MaxRefinementIterations) {
		return plan.ContentPlan{}, fmt.Errorf("%w: %d of %d iterations used",
			domain.ErrRefinementExhausted, len(req.Plan.RefinementHistory), s.defaults.MaxRefinementIterations)
	}

	prompt, err := buildRefinePrompt(req.Plan, req.Instructions, plan.CombineContexts(req.Contexts))
	if err != nil {
		return plan.ContentPlan{}, &domain.PlanGenerationError{Provider: provider, Model: model, Reason: "building refine prompt", Err: err}
	}

	payload, err := s.complete(ctx, provider, model, prompt)
	if err != nil {
		return plan.ContentPlan{}, err
	}

	replacement := buildPlan(payload)
	affected, summary := diffSections(req.Plan, replacement)

	// The replacement keeps the original identity and history; only the
	// content is new.
	refined := replacement
	refined.ID = req.Plan.ID
	refined.CreatedAt = req.Plan.CreatedAt
	refined.RefinementHistory = append([]plan.RefinementEntry{}, req.Plan.RefinementHistory...)
	refined = refined.WithRefinement(plan.RefinementEntry{
		ID:               uuid.NewString(),
		Instructions:     req.Instructions,
		Response:         summary,
		AffectedSections: affected,
		UserID:           req.UserID,
		CreatedAt:        time.Now().UTC(),
	})

	s.logger.Info("content plan refined",
		"plan_id", refined.ID,
		"iteration", len(refined.RefinementHistory),
		"affected_sections", len(affected),
	)
	return refined, nil
}

// complete runs one provider call and parses the reply. Any provider or
// parse failure surfaces as a PlanGenerationError carrying the
// provider/model pair.
func (s *engineService) complete(ctx context.Context, provider, model, prompt string) (*planPayload, error) {
	p, err := s.providers.Resolve(provider)
	if err != nil {
		return nil, &domain.PlanGenerationError{Provider: provider, Model: model, Reason: "resolving provider", Err: err}
	}

	resp, err := p.Complete(ctx, &aiSvc.CompletionRequest{
		System: systemPrompt,
		Prompt: prompt,
		Model:  model,
	})
	if err != nil {
		return nil, &domain.PlanGenerationError{Provider: provider, Model: model, Reason: "completion call failed", Err: err}
	}

	payload, err := parsePlanResponse(resp.Text)
	if err != nil {
		return nil, &domain.PlanGenerationError{Provider: provider, Model: model, Reason: "unparseable response", Err: err}
	}
	return payload, nil
}

func (s *engineService) resolveOptions(opts planningSvc.GenerateOptions) (provider, model string) {
	provider = opts.Provider
	if provider == "" {
		provider = s.defaults.Provider
	}
	model = opts.Model
	if model == "" {
		model = s.defaults.Model
	}
	return provider, model
}

// diffSections compares the section trees by title and reports the
// replacement plan's changed/added section ids plus a short summary for
// the refinement history. Sections sharing a title are paired in document
// order so duplicates still count individually.
func diffSections(before, after plan.ContentPlan) ([]string, string) {
	prevByTitle := make(map[string][]plan.Section)
	for _, s := range plan.Flatten(before.Sections) {
		prevByTitle[s.Title] = append(prevByTitle[s.Title], s)
	}

	var affected []string
	changed, added := 0, 0
	for _, s := range plan.Flatten(after.Sections) {
		queue := prevByTitle[s.Title]
		if len(queue) == 0 {
			affected = append(affected, s.ID)
			added++
			continue
		}
		prev := queue[0]
		prevByTitle[s.Title] = queue[1:]
		if prev.Content != s.Content || prev.ComponentType != s.ComponentType {
			affected = append(affected, s.ID)
			changed++
		}
	}
	removed := 0
	for _, queue := range prevByTitle {
		removed += len(queue)
	}

	summary := fmt.Sprintf("%d section(s) changed, %d added, %d removed", changed, added, removed)
	return affected, summary
}
