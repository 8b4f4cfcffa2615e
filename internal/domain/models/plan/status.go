package plan

// Status is the lifecycle state of a content plan.
type Status string

const (
	// StatusDraft is a plan that was created but not fully generated.
	StatusDraft Status = "draft"
	// StatusReady is a freshly generated or refined plan awaiting review.
	StatusReady Status = "ready"
	// StatusApproved is a plan the user accepted for page creation.
	StatusApproved Status = "approved"
	// StatusCompleted is a plan that produced a page; it is read-only.
	StatusCompleted Status = "completed"
)

// CanRefine reports whether a plan in this status may be refined further.
// Completed plans are frozen; everything else can go through another
// refine-then-approve cycle.
func (s Status) CanRefine() bool {
	switch s {
	case StatusDraft, StatusReady, StatusApproved:
		return true
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// CanCreatePage reports whether a plan in this status may be mapped onto a
// template to create a page.
func (s Status) CanCreatePage() bool {
	switch s {
	case StatusReady, StatusApproved:
		return true
	case StatusDraft, StatusCompleted:
		return false
	default:
		return false
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusApproved, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
