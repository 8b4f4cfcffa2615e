package mapping

import (
	"fmt"
	"log/slog"

	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	mappingSvc "pageforge/internal/domain/services/mapping"
)

// engine implements the plan-to-template mapping algorithm: flatten the
// plan, walk the component forest for fillable components, pair strictly
// by position, and fill the first matching title-like and content-like
// input on each paired component.
type engine struct {
	policy Policy
	logger *slog.Logger
}

// NewEngine creates a mapping engine with the given policy.
func NewEngine(policy Policy, logger *slog.Logger) mappingSvc.Engine {
	return &engine{policy: policy, logger: logger}
}

func (e *engine) Map(p plan.ContentPlan, components []canvas.Component) (*mappingSvc.Result, error) {
	sections := flattenNonEmpty(p.Sections)

	out := canvas.CloneTree(components)
	targets := collectFillable(out, e.policy)

	pairs := len(sections)
	if len(targets) < pairs {
		pairs = len(targets)
	}

	result := &mappingSvc.Result{
		Components: out,
		Filled:     pairs,
		Unmapped:   max(0, len(sections)-len(targets)),
	}

	for i := 0; i < pairs; i++ {
		section := sections[i]
		target := targets[i]

		if section.ComponentType != "" && section.ComponentType != target.Type {
			mismatch := mappingSvc.Mismatch{
				SectionID:     section.ID,
				SectionType:   section.ComponentType,
				ComponentID:   target.ID,
				ComponentType: target.Type,
			}
			if e.policy.MismatchMode == MismatchStrict {
				return nil, fmt.Errorf("section %s expects component type %q but position %d holds %q",
					section.ID, section.ComponentType, i, target.Type)
			}
			result.Mismatches = append(result.Mismatches, mismatch)
			e.logger.Warn("component type mismatch, pairing anyway",
				"section_id", section.ID,
				"section_type", section.ComponentType,
				"component_id", target.ID,
				"component_type", target.Type,
			)
		}

		e.fill(target, section)
	}

	if result.Unmapped > 0 {
		e.logger.Info("sections left unmapped",
			"plan_id", p.ID,
			"sections", len(sections),
			"fillable", len(targets),
			"unmapped", result.Unmapped,
		)
	}

	return result, nil
}

// fill writes the section's title and content into the first matching
// input of each candidate list. Only the first match in each list is
// written; empty section values leave the template default untouched.
// A component with no matching input degrades silently.
func (e *engine) fill(c *canvas.Component, section plan.Section) {
	if section.Title != "" {
		if name, ok := firstDeclared(c, e.policy.TitleInputs); ok {
			setInput(c, name, section.Title)
		}
	}
	if section.Content != "" {
		if name, ok := firstDeclared(c, e.policy.ContentInputs); ok {
			setInput(c, name, section.Content)
		}
	}
}

// flattenNonEmpty flattens depth-first in sibling order, dropping sections
// that carry neither a title nor content. Empty sections stay in the plan
// model; they just never consume a fill target.
func flattenNonEmpty(sections []plan.Section) []plan.Section {
	flat := plan.Flatten(sections)
	out := make([]plan.Section, 0, len(flat))
	for _, s := range flat {
		if s.Title == "" && s.Content == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// collectFillable walks the forest root-first in declared order and
// returns pointers to every component exposing at least one recognized
// input. Components with none are skipped entirely: never fill targets,
// position otherwise untouched.
func collectFillable(components []canvas.Component, policy Policy) []*canvas.Component {
	var out []*canvas.Component
	var walk func(list []canvas.Component)
	walk = func(list []canvas.Component) {
		for i := range list {
			c := &list[i]
			if isFillable(c, policy) {
				out = append(out, c)
			}
			walk(c.Children)
		}
	}
	walk(components)
	return out
}

func isFillable(c *canvas.Component, policy Policy) bool {
	if _, ok := firstDeclared(c, policy.TitleInputs); ok {
		return true
	}
	_, ok := firstDeclared(c, policy.ContentInputs)
	return ok
}

// firstDeclared returns the first candidate name the component declares.
func firstDeclared(c *canvas.Component, candidates []string) (string, bool) {
	for _, name := range candidates {
		if c.HasInput(name) {
			return name, true
		}
	}
	return "", false
}

func setInput(c *canvas.Component, name, value string) {
	for i := range c.Inputs {
		if c.Inputs[i].Name == name {
			c.Inputs[i].Value = value
			return
		}
	}
}
