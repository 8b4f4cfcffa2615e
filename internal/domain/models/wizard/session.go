package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/plan"
)

// Session is the stateful root for one user's wizard run. It owns the
// processed sources, the generated plan, the selected contexts, and the
// current step. A session lives in a keyed store for a bounded external
// timeout; there is no cross-request locking, the last writer wins.
type Session struct {
	ID                     string                       `json:"id"`
	UserID                 string                       `json:"user_id"`
	CurrentStep            Step                         `json:"current_step"`
	ProcessedDocuments     map[string]ProcessedDocument `json:"processed_documents,omitempty"`
	ContentPlan            *plan.ContentPlan            `json:"content_plan,omitempty"`
	SelectedContexts       []plan.AIContext             `json:"selected_contexts,omitempty"`
	TemplateID             *string                      `json:"template_id,omitempty"`
	UploadedFileIDs        []string                     `json:"uploaded_file_ids,omitempty"`
	RefinementInstructions string                       `json:"refinement_instructions,omitempty"`
	CreatedAt              time.Time                    `json:"created_at"`
	UpdatedAt              time.Time                    `json:"updated_at"`
}

// NewSession creates a session at the first wizard step.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:                 uuid.NewString(),
		UserID:             userID,
		CurrentStep:        StepUpload,
		ProcessedDocuments: make(map[string]ProcessedDocument),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// CanProceed evaluates the advance precondition for the current step
// against session data. The returned reason is empty when advancing is
// allowed.
func (s *Session) CanProceed() (bool, string) {
	switch s.CurrentStep {
	case StepUpload:
		if len(s.ProcessedDocuments) == 0 {
			return false, "at least one processed document is required"
		}
		if s.TemplateID == nil || *s.TemplateID == "" {
			return false, "a template must be selected"
		}
		return true, ""
	case StepPlan:
		if s.ContentPlan == nil {
			return false, "a content plan has not been generated"
		}
		return true, ""
	case StepCreate:
		return true, ""
	default:
		return false, fmt.Sprintf("unknown step %q", s.CurrentStep)
	}
}

// Advance moves the session to the next step. It fails with
// InvalidWizardStateError, leaving the session untouched, when the current
// step's precondition does not hold or the session is already at the last
// step. The previous step is returned so the caller can emit a
// step-changed notification.
func (s *Session) Advance() (Step, error) {
	next, ok := s.CurrentStep.Next()
	if !ok {
		return s.CurrentStep, &domain.InvalidWizardStateError{
			Current: s.CurrentStep.String(),
			Target:  s.CurrentStep.String(),
			Reason:  "already at the final step",
		}
	}
	if allowed, reason := s.CanProceed(); !allowed {
		return s.CurrentStep, &domain.InvalidWizardStateError{
			Current: s.CurrentStep.String(),
			Target:  next.String(),
			Reason:  reason,
		}
	}
	prev := s.CurrentStep
	s.CurrentStep = next
	s.Touch()
	return prev, nil
}

// Back moves the session to the previous step. Going backward has no
// precondition; at the first step it is a no-op.
func (s *Session) Back() Step {
	prev := s.CurrentStep
	if target, ok := s.CurrentStep.Prev(); ok {
		s.CurrentStep = target
		s.Touch()
	}
	return prev
}

// AttachDocument records an extracted source on the session.
func (s *Session) AttachDocument(doc ProcessedDocument) {
	if s.ProcessedDocuments == nil {
		s.ProcessedDocuments = make(map[string]ProcessedDocument)
	}
	s.ProcessedDocuments[doc.ID] = doc
	s.Touch()
}

// RemoveDocument drops a processed source by id.
func (s *Session) RemoveDocument(id string) {
	delete(s.ProcessedDocuments, id)
	s.Touch()
}

// SelectTemplate records the template the new page will be cloned from.
func (s *Session) SelectTemplate(templateID string) {
	s.TemplateID = &templateID
	s.Touch()
}

// SetContexts replaces the AI contexts selected for prompt assembly.
func (s *Session) SetContexts(contexts []plan.AIContext) {
	s.SelectedContexts = make([]plan.AIContext, len(contexts))
	copy(s.SelectedContexts, contexts)
	s.Touch()
}

// SetPlan swaps in a replacement content plan. Plans are value types, so
// this is the atomic replace the refinement loop depends on.
func (s *Session) SetPlan(p plan.ContentPlan) {
	s.ContentPlan = &p
	s.Touch()
}

// ClearPlan discards the current plan, e.g. after the page is created.
func (s *Session) ClearPlan() {
	s.ContentPlan = nil
	s.RefinementInstructions = ""
	s.Touch()
}

// Touch refreshes UpdatedAt; every mutating operation goes through here.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
