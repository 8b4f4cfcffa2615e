package plan

import "time"

// ContentPlan is the root aggregate of a generated content outline. Plans
// are value types: every edit (refinement, title change, status change)
// produces a new plan and the caller swaps it atomically. Derived numbers
// (section/word counts) are always computed from the tree, never stored.
type ContentPlan struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Summary           string            `json:"summary"`
	TargetAudience    string            `json:"target_audience"`
	EstimatedReadTime int               `json:"estimated_read_time"` // minutes
	Sections          []Section         `json:"sections"`
	Status            Status            `json:"status"`
	RefinementHistory []RefinementEntry `json:"refinement_history,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// TotalSectionCount walks the whole tree.
func (p ContentPlan) TotalSectionCount() int {
	total := 0
	for _, s := range p.Sections {
		total += s.SectionCount()
	}
	return total
}

// TotalWordCount walks the whole tree with the shared word counter, so the
// badge shown to the user and the read-time estimate always agree.
func (p ContentPlan) TotalWordCount() int {
	total := 0
	for _, s := range p.Sections {
		total += s.WordCount()
	}
	return total
}

// CanRefine combines the status gate with the iteration cap. A plan that
// has exhausted its refinements stays valid; it just cannot be refined
// again.
func (p ContentPlan) CanRefine(maxIterations int) bool {
	return p.Status.CanRefine() && len(p.RefinementHistory) < maxIterations
}

// SectionIDs returns every section id in flattening order.
func (p ContentPlan) SectionIDs() []string {
	return CollectIDs(p.Sections)
}

// HasSection reports whether id names a section anywhere in the tree.
func (p ContentPlan) HasSection(id string) bool {
	for _, existing := range p.SectionIDs() {
		if existing == id {
			return true
		}
	}
	return false
}

// WithTitle returns a copy of the plan with a replaced title.
func (p ContentPlan) WithTitle(title string) ContentPlan {
	c := p.clone()
	c.Title = title
	return c
}

// WithStatus returns a copy of the plan in the given status.
func (p ContentPlan) WithStatus(status Status) ContentPlan {
	c := p.clone()
	c.Status = status
	return c
}

// WithSections returns a copy of the plan with a replaced section tree.
func (p ContentPlan) WithSections(sections []Section) ContentPlan {
	c := p.clone()
	c.Sections = make([]Section, len(sections))
	copy(c.Sections, sections)
	return c
}

// WithRefinement returns a copy of the plan with one entry appended to the
// refinement history.
func (p ContentPlan) WithRefinement(entry RefinementEntry) ContentPlan {
	c := p.clone()
	c.RefinementHistory = append(c.RefinementHistory, entry)
	return c
}

func (p ContentPlan) clone() ContentPlan {
	c := p
	if p.Sections != nil {
		c.Sections = make([]Section, len(p.Sections))
		for i, s := range p.Sections {
			c.Sections[i] = s.clone()
		}
	}
	if p.RefinementHistory != nil {
		c.RefinementHistory = make([]RefinementEntry, len(p.RefinementHistory))
		copy(c.RefinementHistory, p.RefinementHistory)
	}
	return c
}
