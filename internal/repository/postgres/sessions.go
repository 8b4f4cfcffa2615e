package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/repositories"
)

// PostgresSessionRepository stores wizard sessions as whole JSONB
// documents keyed by id. The session is a working draft with a bounded
// lifetime, so there is no per-field schema; the document round-trips
// through the session's JSON encoding.
type PostgresSessionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(config *RepositoryConfig) repositories.SessionRepository {
	return &PostgresSessionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Save upserts the session document. Last writer wins.
func (r *PostgresSessionRepository) Save(ctx context.Context, session *wizard.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    data = EXCLUDED.data,
		    updated_at = EXCLUDED.updated_at
	`, r.tables.Sessions)

	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		data,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// GetByID retrieves a session by id.
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*wizard.Session, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, r.tables.Sessions)

	var data []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("session %s not found", id)}
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var session wizard.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Sessions)
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// DeleteStale removes sessions whose last update is older than maxAge.
func (r *PostgresSessionRepository) DeleteStale(ctx context.Context, maxAge time.Duration) (int, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE updated_at < $1`, r.tables.Sessions)

	cutoff := time.Now().UTC().Add(-maxAge)
	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
