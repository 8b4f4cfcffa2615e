package repositories

import (
	"context"
	"time"

	"pageforge/internal/domain/models/wizard"
)

// SessionRepository is the keyed store for wizard sessions. Sessions are
// stored as whole documents and the last writer wins; there is no
// optimistic concurrency token.
type SessionRepository interface {
	// Save upserts the session document.
	Save(ctx context.Context, session *wizard.Session) error

	// GetByID retrieves a session; ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*wizard.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteStale removes sessions not updated within maxAge and returns
	// how many were dropped. Enforces the bounded session lifetime.
	DeleteStale(ctx context.Context, maxAge time.Duration) (int, error)
}
