package domain

import (
	"context"
	"time"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// Priority levels shared by projects and tasks
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Visibility controls who inside the workspace can see a project
type Visibility string

const (
	VisibilityPrivate      Visibility = "private"
	VisibilityOrganization Visibility = "organization"
)

// Project is a unit of work inside exactly one workspace. Tasks and the
// project-level member list are embedded, not held in separate top-level
// collections.
type Project struct {
	ID                  string        `json:"id"`
	WorkspaceID         string        `json:"workspaceId"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Status              ProjectStatus `json:"status"`
	Priority            Priority      `json:"priority"`
	Color               string        `json:"color"`
	Visibility          Visibility    `json:"visibility"`
	DefaultRole         Role          `json:"defaultRole"`
	DefaultTaskStatus   TaskStatus    `json:"defaultTaskStatus"`
	DefaultTaskPriority Priority      `json:"defaultTaskPriority"`
	StartDate           *time.Time    `json:"startDate"`
	EndDate             *time.Time    `json:"endDate"`
	Progress            int32         `json:"progress"`
	TeamLead            *string       `json:"teamLead"`
	TeamLeadUser        *Member       `json:"teamLeadUser,omitempty"`
	Members             []Member      `json:"members"`
	Tasks               []Task        `json:"tasks"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// ProjectPatch carries the fields an update actually returned. A nil field was
// not part of the result and is preserved from the existing entry when the
// patch is merged over it. Nested collections (tasks, members) never travel in
// a patch and always survive a merge.
type ProjectPatch struct {
	ID                  string
	Name                *string
	Description         *string
	Status              *ProjectStatus
	Priority            *Priority
	Color               *string
	Visibility          *Visibility
	DefaultRole         *Role
	DefaultTaskStatus   *TaskStatus
	DefaultTaskPriority *Priority
	StartDate           *time.Time
	EndDate             *time.Time
	TeamLead            *string
	Progress            *int32
}

// ProjectRepository defines the interface for project persistence operations
type ProjectRepository interface {
	// GetByWorkspace fetches all projects of a workspace, newest first, with
	// their tasks and flattened member lists attached.
	GetByWorkspace(ctx context.Context, workspaceID string) ([]Project, error)
	// GetByID fetches a single project with related entities attached.
	// Returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Project, error)
	// Create inserts a project from allow-listed fields and returns the
	// canonical server-assigned representation.
	Create(ctx context.Context, fields Fields) (*Project, error)
	// Update applies allow-listed fields to the project and returns the
	// canonical row. Returns ErrNotFound when no row matches.
	Update(ctx context.Context, id string, fields Fields) (*Project, error)
	Delete(ctx context.Context, id string) error
}
