package events

import (
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
)

// Sink receives notifications after the core has committed its own state
// change. Consumption is optional: sinks are invoked fire-and-forget and
// must never influence the emitting operation's result.
type Sink interface {
	// StepChanged fires after a successful wizard step transition.
	StepChanged(session *wizard.Session, previous, next wizard.Step)

	// PageCreated fires after a page was persisted from a plan.
	PageCreated(page *canvas.Page, p plan.ContentPlan)
}
