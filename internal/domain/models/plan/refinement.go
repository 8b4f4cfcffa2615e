package plan

import "time"

// RefinementEntry is an immutable audit record of one refinement pass.
// Entries are append-only; they are never edited or removed, and the
// refinement iteration count is simply the length of the history.
type RefinementEntry struct {
	ID               string    `json:"id"`
	Instructions     string    `json:"instructions"`      // user-provided free text
	Response         string    `json:"response"`          // short summary of what changed
	AffectedSections []string  `json:"affected_sections"` // section ids touched by the pass
	UserID           string    `json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
