package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pageforge/internal/config"
	"pageforge/internal/domain"
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
	wizardModels "pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/repositories"
	canvasSvc "pageforge/internal/domain/services/canvas"
	"pageforge/internal/domain/services/events"
	"pageforge/internal/domain/services/extract"
	planningSvc "pageforge/internal/domain/services/planning"
	wizardSvc "pageforge/internal/domain/services/wizard"
)

type wizardService struct {
	sessions  repositories.SessionRepository
	extractor extract.SourceExtractor
	planner   planningSvc.Engine
	creator   canvasSvc.PageCreator
	sink      events.Sink
	maxIter   int
	logger    *slog.Logger
}

// NewService creates the wizard service.
func NewService(
	sessions repositories.SessionRepository,
	extractor extract.SourceExtractor,
	planner planningSvc.Engine,
	creator canvasSvc.PageCreator,
	sink events.Sink,
	maxIterations int,
	logger *slog.Logger,
) wizardSvc.Service {
	if maxIterations <= 0 {
		maxIterations = config.DefaultMaxRefinementIterations
	}
	return &wizardService{
		sessions:  sessions,
		extractor: extractor,
		planner:   planner,
		creator:   creator,
		sink:      sink,
		maxIter:   maxIterations,
		logger:    logger,
	}
}

func (s *wizardService) CreateSession(ctx context.Context, userID string) (*wizardModels.Session, error) {
	if userID == "" {
		return nil, &domain.ValidationError{Message: "user id is required"}
	}
	session := wizardModels.NewSession(userID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}
	s.logger.Info("wizard session created", "session_id", session.ID, "user_id", userID)
	return session, nil
}

func (s *wizardService) GetSession(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error) {
	return s.load(ctx, userID, sessionID)
}

func (s *wizardService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.load(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *wizardService) Advance(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	prev, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after advance: %w", err)
	}

	// Side channel only; sink failures cannot affect the transition.
	s.sink.StepChanged(session, prev, session.CurrentStep)
	return session, nil
}

func (s *wizardService) Back(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	prev := session.Back()
	if prev == session.CurrentStep {
		return session, nil
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after back: %w", err)
	}

	s.sink.StepChanged(session, prev, session.CurrentStep)
	return session, nil
}

func (s *wizardService) AttachSource(ctx context.Context, userID, sessionID string, src extract.Source) (*wizardModels.Session, error) {
	if len(src.Name) > config.MaxSourceNameLength {
		return nil, &domain.ValidationError{Message: "source name too long"}
	}
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(ctx, src)
	if err != nil {
		// One failed source is fatal for that source only; the session
		// keeps its other documents.
		return nil, err
	}

	session.AttachDocument(*doc)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after attach: %w", err)
	}
	s.logger.Info("source attached",
		"session_id", session.ID,
		"source", doc.SourceName,
		"processor", doc.Processor,
		"words", len(strings.Fields(doc.Text)),
	)
	return session, nil
}

func (s *wizardService) SelectTemplate(ctx context.Context, userID, sessionID, templateID string) (*wizardModels.Session, error) {
	if templateID == "" {
		return nil, &domain.ValidationError{Message: "template id is required"}
	}
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectTemplate(templateID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after template select: %w", err)
	}
	return session, nil
}

func (s *wizardService) SetContexts(ctx context.Context, userID, sessionID string, contexts []plan.AIContext) (*wizardModels.Session, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.SetContexts(contexts)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after context select: %w", err)
	}
	return session, nil
}

func (s *wizardService) GeneratePlan(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.ProcessedDocuments) == 0 {
		return nil, &domain.ValidationError{Message: "no processed documents to generate from"}
	}

	templateID := ""
	if session.TemplateID != nil {
		templateID = *session.TemplateID
	}

	docs := make([]wizardModels.ProcessedDocument, 0, len(session.ProcessedDocuments))
	for _, id := range sortedDocumentIDs(session) {
		docs = append(docs, session.ProcessedDocuments[id])
	}

	generated, err := s.planner.Generate(ctx, &planningSvc.GenerateRequest{
		Sources:    docs,
		Contexts:   session.SelectedContexts,
		TemplateID: templateID,
	})
	if err != nil {
		return nil, err
	}

	session.SetPlan(generated)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after generation: %w", err)
	}
	return session, nil
}

func (s *wizardService) RefinePlan(ctx context.Context, userID, sessionID, instructions string) (*wizardModels.Session, error) {
	err := validation.Validate(instructions,
		validation.Required,
		validation.Length(1, config.MaxInstructionsLength),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("instructions: %v", err)}
	}

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ContentPlan == nil {
		return nil, &domain.ValidationError{Message: "no content plan to refine"}
	}
	if !session.ContentPlan.CanRefine(s.maxIter) {
		return nil, fmt.Errorf("%w: %d of %d iterations used",
			domain.ErrRefinementExhausted, len(session.ContentPlan.RefinementHistory), s.maxIter)
	}

	session.RefinementInstructions = instructions
	refined, err := s.planner.Refine(ctx, &planningSvc.RefineRequest{
		Plan:         *session.ContentPlan,
		Instructions: instructions,
		Contexts:     session.SelectedContexts,
		UserID:       userID,
	})
	if err != nil {
		// The plan on the session stays as it was.
		return nil, err
	}

	session.SetPlan(refined)
	session.RefinementInstructions = ""
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after refinement: %w", err)
	}
	return session, nil
}

func (s *wizardService) UpdatePlanTitle(ctx context.Context, userID, sessionID, title string) (*wizardModels.Session, error) {
	err := validation.Validate(title, validation.Required, validation.Length(1, config.MaxPageTitleLength))
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("title: %v", err)}
	}

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ContentPlan == nil {
		return nil, &domain.ValidationError{Message: "no content plan to rename"}
	}

	session.SetPlan(session.ContentPlan.WithTitle(title))
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session after rename: %w", err)
	}
	return session, nil
}

func (s *wizardService) CreatePage(ctx context.Context, userID, sessionID string, opts canvasSvc.CreateOptions) (*canvas.Page, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ContentPlan == nil {
		return nil, &domain.InvalidWizardStateError{
			Current: session.CurrentStep.String(),
			Target:  wizardModels.StepCreate.String(),
			Reason:  "a content plan has not been generated",
		}
	}
	if session.TemplateID == nil || *session.TemplateID == "" {
		return nil, &domain.InvalidWizardStateError{
			Current: session.CurrentStep.String(),
			Target:  wizardModels.StepCreate.String(),
			Reason:  "a template must be selected",
		}
	}
	if !session.ContentPlan.Status.CanCreatePage() {
		return nil, &domain.InvalidWizardStateError{
			Current: session.CurrentStep.String(),
			Target:  wizardModels.StepCreate.String(),
			Reason:  fmt.Sprintf("plan in status %s cannot create a page", session.ContentPlan.Status),
		}
	}

	page, err := s.creator.CreateFromTemplate(ctx, *session.ContentPlan, *session.TemplateID, opts)
	if err != nil {
		return nil, err
	}

	// Success: the plan is spent and the session winds down.
	session.ClearPlan()
	if err := s.sessions.Save(ctx, session); err != nil {
		// The page exists; a failed session save only delays cleanup.
		s.logger.Warn("session save after page creation failed",
			"session_id", session.ID, "error", err)
	}
	return page, nil
}

// load fetches a session and checks ownership. A foreign session reads as
// not found rather than forbidden, so session ids cannot be probed.
func (s *wizardService) load(ctx context.Context, userID, sessionID string) (*wizardModels.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, &domain.NotFoundError{Message: "session not found"}
	}
	return session, nil
}

// sortedDocumentIDs orders the session's documents oldest first; corpus
// order must be deterministic for the AI call and map iteration is not.
func sortedDocumentIDs(session *wizardModels.Session) []string {
	ids := make([]string, 0, len(session.ProcessedDocuments))
	for id := range session.ProcessedDocuments {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := session.ProcessedDocuments[ids[i]], session.ProcessedDocuments[ids[j]]
		if a.ProcessedAt.Equal(b.ProcessedAt) {
			return ids[i] < ids[j]
		}
		return a.ProcessedAt.Before(b.ProcessedAt)
	})
	return ids
}
