package wizard

import (
	"context"

	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	wizardModels "pageforge/internal/domain/models/wizard"
	canvasSvc "pageforge/internal/domain/services/canvas"
	"pageforge/internal/domain/services/extract"
)

// Service drives one user's wizard run: session lifecycle, step
// transitions, source attachment, plan generation/refinement, and final
// page creation. Every mutating operation persists the session before
// returning.
type Service interface {
	// CreateSession starts a new session at the upload step.
	CreateSession(ctx context.Context, userID string) (*wizardModels.Session, error)

	// GetSession fetches a session owned by the user; ErrNotFound when
	// missing or owned by someone else.
	GetSession(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error)

	// DeleteSession abandons a session.
	DeleteSession(ctx context.Context, userID, sessionID string) error

	// Advance moves the session forward one step, emitting a step-changed
	// notification on success.
	Advance(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error)

	// Back moves the session back one step; always permitted.
	Back(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error)

	// AttachSource extracts one source and records it on the session.
	AttachSource(ctx context.Context, userID, sessionID string, src extract.Source) (*wizardModels.Session, error)

	// SelectTemplate records the template for the eventual page.
	SelectTemplate(ctx context.Context, userID, sessionID, templateID string) (*wizardModels.Session, error)

	// SetContexts replaces the AI contexts used for prompt assembly.
	SetContexts(ctx context.Context, userID, sessionID string, contexts []plan.AIContext) (*wizardModels.Session, error)

	// GeneratePlan generates the session's content plan from its sources.
	GeneratePlan(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error)

	// RefinePlan runs one bounded refinement pass over the session's plan.
	RefinePlan(ctx context.Context, userID, sessionID, instructions string) (*wizardModels.Session, error)

	// UpdatePlanTitle replaces the plan's title.
	UpdatePlanTitle(ctx context.Context, userID, sessionID, title string) (*wizardModels.Session, error)

	// CreatePage creates the page from the session's plan and template,
	// then clears the session.
	CreatePage(ctx context.Context, userID, sessionID string, opts canvasSvc.CreateOptions) (*canvas.Page, error)
}
