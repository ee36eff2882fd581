package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepository implements domain.ProjectRepository using PostgreSQL
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, workspace_id, name, COALESCE(description, ''), status, priority,
	COALESCE(color, ''), visibility, default_role, default_task_status, default_task_priority,
	start_date, end_date, team_lead, progress, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Status, &p.Priority,
		&p.Color, &p.Visibility, &p.DefaultRole, &p.DefaultTaskStatus,
		&p.DefaultTaskPriority, &p.StartDate, &p.EndDate, &p.TeamLead,
		&p.Progress, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByWorkspace retrieves all projects of a workspace, newest first, with
// tasks and flattened member lists attached.
func (r *ProjectRepository) GetByWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM projects WHERE workspace_id = $1 ORDER BY created_at DESC",
		projectColumns,
	)
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, domain.NewBackendError("projects.getAll", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, domain.NewBackendError("projects.getAll", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewBackendError("projects.getAll", err)
	}

	if err := r.attachRelated(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID retrieves a single project with related entities attached.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = $1", projectColumns)
	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewBackendError("projects.getById", err)
	}
	single := []domain.Project{*p}
	if err := r.attachRelated(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// Create inserts a project from allow-listed fields. When the caller supplied
// a team_members list, the membership rows are inserted in the same call so
// the UI need not follow up. The returned project carries empty task and
// member collections, matching what a fresh row owns.
func (r *ProjectRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Project, error) {
	teamMembers, _ := fields["team_members"].([]string)

	sanitized := sanitizeFields(fields, projectCreateColumns)
	query, args := insertQuery("projects", sanitized, projectColumns)
	p, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, domain.NewBackendError("projects.create", err)
	}

	if len(teamMembers) > 0 {
		batch := &pgx.Batch{}
		for _, userID := range teamMembers {
			batch.Queue(
				"INSERT INTO project_members (project_id, user_id, role) VALUES ($1, $2, $3)",
				p.ID, userID, domain.RoleMember,
			)
		}
		if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
			return nil, domain.NewBackendError("projects.create members", err)
		}
	}

	p.Tasks = []domain.Task{}
	p.Members = []domain.Member{}
	return p, nil
}

// Update applies allow-listed fields and returns the canonical row.
func (r *ProjectRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Project, error) {
	sanitized := sanitizeFields(fields, projectUpdateColumns)
	query, args := updateQuery("projects", id, sanitized, projectColumns)
	p, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewBackendError("projects.update", err)
	}
	return p, nil
}

// Delete removes a project by id.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id); err != nil {
		return domain.NewBackendError("projects.delete", err)
	}
	return nil
}

// attachRelated loads tasks, flattened member lists, and team lead profiles
// for the given projects in three round trips.
func (r *ProjectRepository) attachRelated(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]string, len(projects))
	leadIDs := []string{}
	for i := range projects {
		ids[i] = projects[i].ID
		if projects[i].TeamLead != nil {
			leadIDs = append(leadIDs, *projects[i].TeamLead)
		}
	}

	tasksByProject, err := r.loadTasks(ctx, ids)
	if err != nil {
		return err
	}
	membersByProject, err := r.loadMembers(ctx, ids)
	if err != nil {
		return err
	}
	leads, err := loadUserProfiles(ctx, r.pool, leadIDs)
	if err != nil {
		return domain.NewBackendError("projects.getAll leads", err)
	}

	for i := range projects {
		p := &projects[i]
		if ts, ok := tasksByProject[p.ID]; ok {
			p.Tasks = ts
		} else {
			p.Tasks = []domain.Task{}
		}
		if ms, ok := membersByProject[p.ID]; ok {
			p.Members = ms
		} else {
			p.Members = []domain.Member{}
		}
		if p.TeamLead != nil {
			if lead, ok := leads[*p.TeamLead]; ok {
				p.TeamLeadUser = &lead
			}
		}
	}
	return nil
}

func (r *ProjectRepository) loadTasks(ctx context.Context, projectIDs []string) (map[string][]domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE project_id = ANY($1) ORDER BY created_at DESC",
		taskColumns,
	)
	rows, err := r.pool.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, domain.NewBackendError("projects.getAll tasks", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Task)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, domain.NewBackendError("projects.getAll tasks", err)
		}
		out[t.ProjectID] = append(out[t.ProjectID], *t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewBackendError("projects.getAll tasks", err)
	}
	return out, nil
}

func (r *ProjectRepository) loadMembers(ctx context.Context, projectIDs []string) (map[string][]domain.Member, error) {
	query := `
		SELECT pm.project_id, pm.user_id, pm.role,
			COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.image, '')
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, domain.NewBackendError("projects.getAll members", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Member)
	for rows.Next() {
		var projectID string
		var m domain.Member
		if err := rows.Scan(&projectID, &m.UserID, &m.Role, &m.Name, &m.Email, &m.Image); err != nil {
			return nil, domain.NewBackendError("projects.getAll members", err)
		}
		out[projectID] = append(out[projectID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewBackendError("projects.getAll members", err)
	}
	return out, nil
}
