package handler

import (
	"log/slog"
	"net/http"

	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/repositories"
	"pageforge/internal/httputil"
)

// PageHandler serves pages and template listings.
type PageHandler struct {
	pages  repositories.PageRepository
	logger *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(pages repositories.PageRepository, logger *slog.Logger) *PageHandler {
	return &PageHandler{pages: pages, logger: logger}
}

// GetPage retrieves a page by id
// GET /api/pages/{id}
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	page, err := h.pages.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// ListTemplates returns all template pages
// GET /api/templates
func (h *PageHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	templates, err := h.pages.ListTemplates(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if templates == nil {
		templates = []canvas.Page{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"total":     len(templates),
	})
}

// DeletePage removes a page
// DELETE /api/pages/{id}
func (h *PageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	if err := h.pages.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
