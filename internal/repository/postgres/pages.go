package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/repositories"
)

// PostgresPageRepository stores pages and templates in one table. The
// component forest is a JSONB column; page metadata gets real columns so
// templates can be listed without decoding forests.
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPageRepository creates a new page repository.
func NewPageRepository(config *RepositoryConfig) repositories.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new page.
func (r *PostgresPageRepository) Create(ctx context.Context, page *canvas.Page) error {
	components, err := json.Marshal(page.Components)
	if err != nil {
		return fmt.Errorf("encode components for page %s: %w", page.ID, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, status, is_template, components, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Pages)

	_, err = r.pool.Exec(ctx, query,
		page.ID,
		page.Title,
		page.Description,
		string(page.Status),
		page.IsTemplate,
		components,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("page %s already exists", page.ID)
		}
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// GetByID retrieves a page or template by id.
func (r *PostgresPageRepository) GetByID(ctx context.Context, id string) (*canvas.Page, error) {
	query := fmt.Sprintf(`
		SELECT id, title, description, status, is_template, components, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Pages)

	page, err := scanPage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("page %s not found", id)}
		}
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}
	return page, nil
}

// ListTemplates returns all template pages ordered by title.
func (r *PostgresPageRepository) ListTemplates(ctx context.Context) ([]canvas.Page, error) {
	query := fmt.Sprintf(`
		SELECT id, title, description, status, is_template, components, created_at, updated_at
		FROM %s
		WHERE is_template = TRUE
		ORDER BY title
	`, r.tables.Pages)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []canvas.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("list templates: %w", err)
		}
		templates = append(templates, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Delete removes a page.
func (r *PostgresPageRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Pages)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("page %s not found", id)}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*canvas.Page, error) {
	var (
		page       canvas.Page
		status     string
		components []byte
	)
	err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Description,
		&status,
		&page.IsTemplate,
		&components,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	page.Status = canvas.PublishStatus(status)
	if len(components) > 0 {
		if err := json.Unmarshal(components, &page.Components); err != nil {
			return nil, fmt.Errorf("decode components: %w", err)
		}
	}
	return &page, nil
}
