package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository implements domain.TaskRepository using PostgreSQL
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `id, project_id, title, COALESCE(description, ''), status, priority,
	COALESCE(type, ''), assignee_id, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Type, &t.AssigneeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByProject retrieves all tasks of a project, newest first, with assignee
// profiles attached.
func (r *TaskRepository) GetByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE project_id = $1 ORDER BY created_at DESC",
		taskColumns,
	)
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, domain.NewBackendError("tasks.getByProject", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, domain.NewBackendError("tasks.getByProject", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewBackendError("tasks.getByProject", err)
	}

	if err := r.attachAssignees(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID retrieves a single task with its assignee attached.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	t, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewBackendError("tasks.getById", err)
	}
	single := []domain.Task{*t}
	if err := r.attachAssignees(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// Create inserts a task from allow-listed fields and returns the canonical
// row with the assignee profile joined in.
func (r *TaskRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Task, error) {
	sanitized := sanitizeFields(fields, taskCreateColumns)
	query, args := insertQuery("tasks", sanitized, taskColumns)
	t, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, domain.NewBackendError("tasks.create", err)
	}
	single := []domain.Task{*t}
	if err := r.attachAssignees(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// Update applies allow-listed fields and returns the canonical row. The
// result is a bare row; consumers replace the stored entry wholesale.
func (r *TaskRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Task, error) {
	sanitized := sanitizeFields(fields, taskUpdateColumns)
	query, args := updateQuery("tasks", id, sanitized, taskColumns)
	t, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewBackendError("tasks.update", err)
	}
	return t, nil
}

// Delete removes one or more tasks by id.
func (r *TaskRepository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = ANY($1)", ids); err != nil {
		return domain.NewBackendError("tasks.delete", err)
	}
	return nil
}

func (r *TaskRepository) attachAssignees(ctx context.Context, tasks []domain.Task) error {
	assigneeIDs := []string{}
	for i := range tasks {
		if tasks[i].AssigneeID != nil {
			assigneeIDs = append(assigneeIDs, *tasks[i].AssigneeID)
		}
	}
	profiles, err := loadUserProfiles(ctx, r.pool, assigneeIDs)
	if err != nil {
		return domain.NewBackendError("tasks.assignees", err)
	}
	for i := range tasks {
		t := &tasks[i]
		if t.AssigneeID == nil {
			continue
		}
		if profile, ok := profiles[*t.AssigneeID]; ok {
			t.Assignee = &profile
		}
	}
	return nil
}
