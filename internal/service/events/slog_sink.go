package events

import (
	"log/slog"

	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/services/events"
)

// slogSink writes lifecycle events to the structured log. It is the
// default sink; queue- or webhook-backed sinks can replace it without the
// emitting services noticing.
type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink that logs every event.
func NewSlogSink(logger *slog.Logger) events.Sink {
	return &slogSink{logger: logger}
}

func (s *slogSink) StepChanged(session *wizard.Session, previous, next wizard.Step) {
	s.logger.Info("wizard step changed",
		"session_id", session.ID,
		"user_id", session.UserID,
		"from", previous.String(),
		"to", next.String(),
	)
}

func (s *slogSink) PageCreated(page *canvas.Page, p plan.ContentPlan) {
	s.logger.Info("page created from plan",
		"page_id", page.ID,
		"page_title", page.Title,
		"plan_id", p.ID,
		"sections", p.TotalSectionCount(),
		"refinements", len(p.RefinementHistory),
	)
}

// noopSink drops every event. Useful in tests and one-shot tooling.
type noopSink struct{}

// NewNoopSink creates a sink that ignores all events.
func NewNoopSink() events.Sink { return noopSink{} }

func (noopSink) StepChanged(*wizard.Session, wizard.Step, wizard.Step) {}

func (noopSink) PageCreated(*canvas.Page, plan.ContentPlan) {}
