package postgres

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceMemberRepository implements domain.WorkspaceMemberRepository using
// PostgreSQL.
type WorkspaceMemberRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceMemberRepository creates a new WorkspaceMemberRepository
func NewWorkspaceMemberRepository(pool *pgxpool.Pool) *WorkspaceMemberRepository {
	return &WorkspaceMemberRepository{pool: pool}
}

// GetByWorkspace fetches the member list with user profiles joined in.
func (r *WorkspaceMemberRepository) GetByWorkspace(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	query := `
		SELECT wm.user_id, wm.role,
			COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.image, '')
		FROM workspace_members wm
		JOIN users u ON u.id = wm.user_id
		WHERE wm.workspace_id = $1`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, domain.NewBackendError("workspaceMembers.getAll", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.UserID, &m.Role, &m.Name, &m.Email, &m.Image); err != nil {
			return nil, domain.NewBackendError("workspaceMembers.getAll", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewBackendError("workspaceMembers.getAll", err)
	}
	return members, nil
}

// UpsertBatch writes every membership in one round trip, keyed on
// (user_id, workspace_id).
func (r *WorkspaceMemberRepository) UpsertBatch(ctx context.Context, memberships []domain.WorkspaceMembership) error {
	if len(memberships) == 0 {
		return nil
	}
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, workspace_id) DO UPDATE SET role = EXCLUDED.role`
	batch := &pgx.Batch{}
	for _, m := range memberships {
		batch.Queue(query, m.WorkspaceID, m.UserID, m.Role)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return domain.NewBackendError("workspaceMembers.upsertBatch", err)
	}
	return nil
}
