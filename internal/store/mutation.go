package store

import "github.com/fizzhq/fizz/fizz-client/internal/domain"

// Mutation is one of the closed set of merge operations applied to the store
// tree. Each variant corresponds to the settlement of one asynchronous gateway
// call; the store itself performs no I/O.
type Mutation interface {
	isMutation()
}

// WorkspaceSet replaces the current workspace. Applying it again with the same
// workspace id is a no-op, so repeated activation of the same organization
// cannot disturb loaded state.
type WorkspaceSet struct {
	Workspace domain.Workspace
}

// ProjectsFetched replaces the current workspace's project collection
// wholesale. Dropped when no workspace is current.
type ProjectsFetched struct {
	Projects []domain.Project
}

// ProjectCreated prepends the project, newest first.
type ProjectCreated struct {
	Project domain.Project
}

// ProjectFetched upserts a single project by id: replaced in place when
// already loaded, appended otherwise.
type ProjectFetched struct {
	Project domain.Project
}

// ProjectUpdated shallow-merges the patch over the existing entry. Fields the
// patch does not carry are preserved, including the task and member
// collections. Dropped when the project is not loaded.
type ProjectUpdated struct {
	Patch domain.ProjectPatch
}

// ProjectDeleted removes the project by id. No-op when absent.
type ProjectDeleted struct {
	ID string
}

// TaskCreated prepends the task to its owning project's task collection,
// located via the task's project id. Dropped when that project is not loaded.
type TaskCreated struct {
	Task domain.Task
}

// TaskUpdated replaces the matching task entry wholesale. No-op when either
// the project or the task is missing.
type TaskUpdated struct {
	Task domain.Task
}

// TasksDeleted removes every task whose id is in the set from every loaded
// project. The sweep is global, not scoped to one project.
type TasksDeleted struct {
	IDs []string
}

// WorkspaceMembersFetched replaces the workspace member list wholesale.
type WorkspaceMembersFetched struct {
	Members []domain.Member
}

// ProjectMemberAdded appends the member to the named project's member list,
// initializing the list when absent.
type ProjectMemberAdded struct {
	ProjectID string
	Member    domain.Member
}

// ProjectMemberRemoved removes every entry with the user id from the named
// project's member list.
type ProjectMemberRemoved struct {
	ProjectID string
	UserID    string
}

func (WorkspaceSet) isMutation()            {}
func (ProjectsFetched) isMutation()         {}
func (ProjectCreated) isMutation()          {}
func (ProjectFetched) isMutation()          {}
func (ProjectUpdated) isMutation()          {}
func (ProjectDeleted) isMutation()          {}
func (TaskCreated) isMutation()             {}
func (TaskUpdated) isMutation()             {}
func (TasksDeleted) isMutation()            {}
func (WorkspaceMembersFetched) isMutation() {}
func (ProjectMemberAdded) isMutation()      {}
func (ProjectMemberRemoved) isMutation()    {}
