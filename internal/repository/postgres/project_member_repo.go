package postgres

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectMemberRepository implements domain.ProjectMemberRepository using
// PostgreSQL.
type ProjectMemberRepository struct {
	pool *pgxpool.Pool
}

// NewProjectMemberRepository creates a new ProjectMemberRepository
func NewProjectMemberRepository(pool *pgxpool.Pool) *ProjectMemberRepository {
	return &ProjectMemberRepository{pool: pool}
}

// Add inserts a membership row and returns the joined user profile, so the
// caller can append it to the project's member list without a second fetch.
func (r *ProjectMemberRepository) Add(ctx context.Context, projectID, userID string, role domain.Role) (*domain.Member, error) {
	query := `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING role`
	var m domain.Member
	m.UserID = userID
	if err := r.pool.QueryRow(ctx, query, projectID, userID, role).Scan(&m.Role); err != nil {
		return nil, domain.NewBackendError("projectMembers.add", err)
	}

	profiles, err := loadUserProfiles(ctx, r.pool, []string{userID})
	if err != nil {
		return nil, domain.NewBackendError("projectMembers.add", err)
	}
	if profile, ok := profiles[userID]; ok {
		m.Name = profile.Name
		m.Email = profile.Email
		m.Image = profile.Image
	}
	return &m, nil
}

// Remove deletes the membership rows for the user within the project.
func (r *ProjectMemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	query := "DELETE FROM project_members WHERE project_id = $1 AND user_id = $2"
	if _, err := r.pool.Exec(ctx, query, projectID, userID); err != nil {
		return domain.NewBackendError("projectMembers.remove", err)
	}
	return nil
}
