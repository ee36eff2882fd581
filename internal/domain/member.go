package domain

import "context"

// Role is a member's role inside a workspace or project
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Member is a user's association with a workspace or project. The same user
// profile may appear in several member lists; a project member list holds a
// snapshot of the profile at the time of addition.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
	Role   Role   `json:"role"`
}

// WorkspaceMembership is the workspace_members row linking a user to a
// workspace with a normalized role.
type WorkspaceMembership struct {
	WorkspaceID string `json:"workspaceId"`
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
}

// WorkspaceMemberRepository defines persistence operations for workspace-level
// membership.
type WorkspaceMemberRepository interface {
	// GetByWorkspace fetches the workspace member list with user profiles
	// joined in.
	GetByWorkspace(ctx context.Context, workspaceID string) ([]Member, error)
	// UpsertBatch writes every membership, keyed on (user_id, workspace_id).
	UpsertBatch(ctx context.Context, memberships []WorkspaceMembership) error
}

// ProjectMemberRepository defines persistence operations for project-level
// membership.
type ProjectMemberRepository interface {
	// Add inserts a membership row and returns the joined user profile so the
	// caller does not have to re-fetch.
	Add(ctx context.Context, projectID, userID string, role Role) (*Member, error)
	Remove(ctx context.Context, projectID, userID string) error
}
