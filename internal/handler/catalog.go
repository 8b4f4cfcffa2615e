package handler

import (
	"log/slog"
	"net/http"

	"pageforge/internal/domain/services/catalog"
	"pageforge/internal/httputil"
)

// CatalogHandler serves the component type catalog.
type CatalogHandler struct {
	catalog catalog.ComponentCatalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(c catalog.ComponentCatalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: logger}
}

// ListComponentTypes returns component type ids with display labels
// GET /api/catalog/component-types
func (h *CatalogHandler) ListComponentTypes(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	types, err := h.catalog.ListComponentTypes(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"component_types": types})
}

// HealthCheck reports service liveness
// GET /health
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
