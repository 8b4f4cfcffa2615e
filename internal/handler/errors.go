package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"pageforge/internal/domain"
	"pageforge/internal/httputil"
)

// respondError maps a domain error onto an RFC 7807 problem response.
// Typed domain errors carry their own status code; anything else is a 500
// with the detail withheld.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if !errors.As(err, &httpErr) {
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Page validation failures carry a per-path violation list the client
	// can render against the template.
	var cce *domain.CanvasCreationError
	if errors.As(err, &cce) && len(cce.Violations) > 0 {
		httputil.RespondErrorWithExtras(w, httpErr.StatusCode(), err.Error(), map[string]any{
			"violations": cce.Violations,
		})
		return
	}

	httputil.RespondError(w, httpErr.StatusCode(), err.Error())
}

// requireUserID pulls the authenticated user from the request context.
// The auth middleware guarantees it for API routes; an empty id here means
// the route was wired outside the middleware chain.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}
