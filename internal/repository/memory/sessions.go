package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/repositories"
)

// SessionRepository is an in-memory session store for development and
// tests. Sessions round-trip through their JSON encoding so callers see
// the same copy semantics as the database-backed store.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	updated  map[string]time.Time
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() repositories.SessionRepository {
	return &SessionRepository{
		sessions: make(map[string][]byte),
		updated:  make(map[string]time.Time),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *wizard.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = data
	r.updated[session.ID] = session.UpdatedAt
	return nil
}

func (r *SessionRepository) GetByID(_ context.Context, id string) (*wizard.Session, error) {
	r.mu.RLock()
	data, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("session %s not found", id)}
	}

	var session wizard.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	delete(r.updated, id)
	return nil
}

func (r *SessionRepository) DeleteStale(_ context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, updatedAt := range r.updated {
		if updatedAt.Before(cutoff) {
			delete(r.sessions, id)
			delete(r.updated, id)
			dropped++
		}
	}
	return dropped, nil
}
