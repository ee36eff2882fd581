package postgres

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

const workspaceColumns = `id, name, COALESCE(slug, ''), COALESCE(image_url, ''), owner_id, created_at, updated_at`

// Upsert writes the workspace record keyed on id. Organization metadata wins
// on conflict; ownership attribution is only set on first insert.
func (r *WorkspaceRepository) Upsert(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (id, name, slug, image_url, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			image_url = EXCLUDED.image_url,
			updated_at = now()
		RETURNING ` + workspaceColumns
	ws, err := scanWorkspace(r.pool.QueryRow(ctx, query,
		workspace.ID, workspace.Name, workspace.Slug, workspace.ImageURL, workspace.OwnerID))
	if err != nil {
		return nil, domain.NewBackendError("workspaces.upsert", err)
	}
	return ws, nil
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(&w.ID, &w.Name, &w.Slug, &w.ImageURL, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
