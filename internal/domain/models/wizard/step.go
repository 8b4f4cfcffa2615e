package wizard

// Step is one stage of the page-creation wizard. Steps are strictly
// linear: UPLOAD, then PLAN, then CREATE. Completion is not a step; the
// session is simply cleared when the page is created.
type Step string

const (
	StepUpload Step = "upload"
	StepPlan   Step = "plan"
	StepCreate Step = "create"
)

// steps in wizard order.
var steps = []Step{StepUpload, StepPlan, StepCreate}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	for _, known := range steps {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the following step and false when s is already last.
func (s Step) Next() (Step, bool) {
	for i, known := range steps {
		if s == known && i+1 < len(steps) {
			return steps[i+1], true
		}
	}
	return s, false
}

// Prev returns the preceding step and false when s is already first.
func (s Step) Prev() (Step, bool) {
	for i, known := range steps {
		if s == known && i > 0 {
			return steps[i-1], true
		}
	}
	return s, false
}

func (s Step) String() string { return string(s) }
