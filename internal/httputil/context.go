package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions.
type contextKey string

const userIDKey contextKey = "userID"

// WithUserID adds the authenticated user id to the request context.
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves the user id from context; empty when unauthenticated.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
