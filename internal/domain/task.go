package domain

import (
	"context"
	"time"
)

// TaskStatus is the board column a task sits in
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Task is the atomic unit of work, owned by exactly one project.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Type        string     `json:"type"`
	AssigneeID  *string    `json:"assigneeId"`
	Assignee    *Member    `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	// GetByProject fetches all tasks of a project, newest first, with the
	// assignee profile joined in.
	GetByProject(ctx context.Context, projectID string) ([]Task, error)
	// GetByID fetches a single task. Returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Task, error)
	// Create inserts a task from allow-listed fields and returns the canonical
	// server-assigned representation with the assignee joined in.
	Create(ctx context.Context, fields Fields) (*Task, error)
	// Update applies allow-listed fields and returns the canonical row.
	Update(ctx context.Context, id string, fields Fields) (*Task, error)
	// Delete removes one or more tasks by id.
	Delete(ctx context.Context, ids ...string) error
}
