package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds the shared collaborators for repository
// implementations.
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names. Interpolating them
// with fmt.Sprintf is safe: the prefix comes from config, never from
// request input, and each environment gets its own statement text.
type TableNames struct {
	Sessions string
	Pages    string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Sessions: fmt.Sprintf("%swizard_sessions", prefix),
		Pages:    fmt.Sprintf("%spages", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection.
//
// Port 6543 is a transaction pooler (PgBouncer) that does not support
// prepared statements. When detected, the pool switches to
// QueryExecModeCacheDescribe: it keeps the extended protocol needed for
// JSONB encoding while avoiding "prepared statement already exists"
// errors. An explicit default_query_exec_mode in the connection string
// takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
