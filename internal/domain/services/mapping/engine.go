package mapping

import (
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
)

// Engine maps a content plan onto a template's component forest. The
// algorithm is deterministic and stateless: the same (plan, components)
// inputs always produce the same output, which keeps the regenerate loop
// predictable and the engine safe to call concurrently on different plans.
type Engine interface {
	// Map returns a copy of the component forest with recognized inputs
	// filled from the plan's flattened sections, paired strictly by
	// position. The inputs are never mutated.
	Map(p plan.ContentPlan, components []canvas.Component) (*Result, error)
}

// Result is the outcome of one mapping run.
type Result struct {
	// Components is the filled forest; structure is identical to the input.
	Components []canvas.Component

	// Filled is the number of components that received at least one value.
	Filled int

	// Unmapped is the number of flattened sections left without a
	// component. Non-fatal; the caller surfaces it.
	Unmapped int

	// Mismatches lists pairings where the section's component-type hint
	// differed from the component's own type. In the default policy these
	// are reported only and pairing proceeds.
	Mismatches []Mismatch
}

// Mismatch records one type disagreement between a paired section and
// component.
type Mismatch struct {
	SectionID     string `json:"section_id"`
	SectionType   string `json:"section_type"`
	ComponentID   string `json:"component_id"`
	ComponentType string `json:"component_type"`
}
