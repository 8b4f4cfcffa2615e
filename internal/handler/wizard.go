package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"pageforge/internal/config"
	"pageforge/internal/domain/models/plan"
	canvasSvc "pageforge/internal/domain/services/canvas"
	"pageforge/internal/domain/services/extract"
	wizardSvc "pageforge/internal/domain/services/wizard"
	"pageforge/internal/httputil"
)

// WizardHandler exposes the wizard session lifecycle over HTTP.
type WizardHandler struct {
	wizard wizardSvc.Service
	logger *slog.Logger
}

// NewWizardHandler creates a new wizard handler.
func NewWizardHandler(wizard wizardSvc.Service, logger *slog.Logger) *WizardHandler {
	return &WizardHandler{wizard: wizard, logger: logger}
}

// CreateSession starts a new wizard session
// POST /api/wizard/sessions
func (h *WizardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.CreateSession(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, session)
}

// GetSession retrieves a wizard session
// GET /api/wizard/sessions/{id}
func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.GetSession(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// DeleteSession abandons a wizard session
// DELETE /api/wizard/sessions/{id}
func (h *WizardHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.wizard.DeleteSession(r.Context(), userID, r.PathValue("id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Advance moves the session to the next step
// POST /api/wizard/sessions/{id}/advance
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.Advance(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// Back moves the session to the previous step
// POST /api/wizard/sessions/{id}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.Back(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// AttachSource attaches a source document to the session. Multipart
// requests carry an uploaded file; JSON requests carry a URL to scrape.
// POST /api/wizard/sessions/{id}/sources
func (h *WizardHandler) AttachSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID := r.PathValue("id")

	src, ok := h.parseSource(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.AttachSource(r.Context(), userID, sessionID, src)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

func (h *WizardHandler) parseSource(w http.ResponseWriter, r *http.Request) (extract.Source, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid multipart request")
			return extract.Source{}, false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "a 'file' part is required")
			return extract.Source{}, false
		}
		return extract.Source{
			Name:    header.Filename,
			Kind:    "file",
			Content: file,
		}, true
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return extract.Source{}, false
	}
	if req.URL == "" {
		httputil.RespondError(w, http.StatusBadRequest, "url is required")
		return extract.Source{}, false
	}
	return extract.Source{
		Name: req.URL,
		Kind: "webpage",
		URL:  req.URL,
	}, true
}

// SelectTemplate records the template for the session
// PUT /api/wizard/sessions/{id}/template
func (h *WizardHandler) SelectTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.wizard.SelectTemplate(r.Context(), userID, r.PathValue("id"), req.TemplateID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// SetContexts replaces the AI contexts selected for the session
// PUT /api/wizard/sessions/{id}/contexts
func (h *WizardHandler) SetContexts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Contexts []plan.AIContext `json:"contexts"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.wizard.SetContexts(r.Context(), userID, r.PathValue("id"), req.Contexts)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// GeneratePlan generates a content plan from the attached sources
// POST /api/wizard/sessions/{id}/plan
func (h *WizardHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.GeneratePlan(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// RefinePlan applies one refinement pass to the session's plan
// POST /api/wizard/sessions/{id}/plan/refinements
func (h *WizardHandler) RefinePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Instructions string `json:"instructions"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.wizard.RefinePlan(r.Context(), userID, r.PathValue("id"), req.Instructions)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// UpdatePlanTitle renames the session's plan
// PATCH /api/wizard/sessions/{id}/plan
func (h *WizardHandler) UpdatePlanTitle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.wizard.UpdatePlanTitle(r.Context(), userID, r.PathValue("id"), req.Title)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// CreatePage creates the final page from the session's plan
// POST /api/wizard/sessions/{id}/page
func (h *WizardHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var opts canvasSvc.CreateOptions
	if r.ContentLength > 0 {
		if err := httputil.ParseJSON(w, r, &opts); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	page, err := h.wizard.CreatePage(r.Context(), userID, r.PathValue("id"), opts)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, page)
}
