package service

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/store"
)

// WorkspaceService is the single dispatch point for workspace mutations.
// Every method performs one gateway call and, only when it settles
// successfully, applies the matching store mutation. On failure the error
// propagates to the caller and the tree is left exactly as it was.
//
// Two independently dispatched operations may settle in either order; the
// last one to settle wins. There is no version check and no cancellation: a
// settled mutation always applies.
type WorkspaceService struct {
	projectRepo       domain.ProjectRepository
	taskRepo          domain.TaskRepository
	workspaceMembers  domain.WorkspaceMemberRepository
	projectMembers    domain.ProjectMemberRepository
	commentRepo       domain.CommentRepository
	store             *store.Store
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(
	projectRepo domain.ProjectRepository,
	taskRepo domain.TaskRepository,
	workspaceMembers domain.WorkspaceMemberRepository,
	projectMembers domain.ProjectMemberRepository,
	commentRepo domain.CommentRepository,
	st *store.Store,
) *WorkspaceService {
	return &WorkspaceService{
		projectRepo:      projectRepo,
		taskRepo:         taskRepo,
		workspaceMembers: workspaceMembers,
		projectMembers:   projectMembers,
		commentRepo:      commentRepo,
		store:            st,
	}
}

// Store exposes the underlying state container for read access.
func (s *WorkspaceService) Store() *store.Store {
	return s.store
}

// FetchProjects loads the workspace's projects and replaces the store's
// project collection. A result arriving when no workspace is current is
// dropped by the store, not an error.
func (s *WorkspaceService) FetchProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	projects, err := s.projectRepo.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.ProjectsFetched{Projects: projects})
	return projects, nil
}

// FetchProject loads a single project and upserts it into the project
// collection.
func (s *WorkspaceService) FetchProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.ProjectFetched{Project: *project})
	return project, nil
}

// CreateProject creates a project and prepends it to the collection.
func (s *WorkspaceService) CreateProject(ctx context.Context, fields domain.Fields) (*domain.Project, error) {
	project, err := s.projectRepo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.ProjectCreated{Project: *project})
	return project, nil
}

// UpdateProject updates a project and merges the changed fields over the
// stored entry, preserving everything the result did not carry.
func (s *WorkspaceService) UpdateProject(ctx context.Context, id string, fields domain.Fields) (*domain.Project, error) {
	project, err := s.projectRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.ProjectUpdated{Patch: projectPatch(project, fields)})
	return project, nil
}

// DeleteProject deletes a project and removes it from the collection.
func (s *WorkspaceService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.store.Apply(store.ProjectDeleted{ID: id})
	return nil
}

// CreateTask creates a task and prepends it to its project's task list.
func (s *WorkspaceService) CreateTask(ctx context.Context, fields domain.Fields) (*domain.Task, error) {
	task, err := s.taskRepo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.TaskCreated{Task: *task})
	return task, nil
}

// UpdateTask updates a task and replaces the stored entry wholesale.
func (s *WorkspaceService) UpdateTask(ctx context.Context, id string, fields domain.Fields) (*domain.Task, error) {
	task, err := s.taskRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.TaskUpdated{Task: *task})
	return task, nil
}

// DeleteTasks deletes one or more tasks and sweeps them out of every loaded
// project.
func (s *WorkspaceService) DeleteTasks(ctx context.Context, ids ...string) error {
	if err := s.taskRepo.Delete(ctx, ids...); err != nil {
		return err
	}
	s.store.Apply(store.TasksDeleted{IDs: ids})
	return nil
}

// FetchWorkspaceMembers loads the workspace member list and replaces it in
// the store.
func (s *WorkspaceService) FetchWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	members, err := s.workspaceMembers.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.WorkspaceMembersFetched{Members: members})
	return members, nil
}

// AddProjectMember adds a user to a project and appends the joined profile to
// the project's member list.
func (s *WorkspaceService) AddProjectMember(ctx context.Context, projectID, userID string, role domain.Role) (*domain.Member, error) {
	member, err := s.projectMembers.Add(ctx, projectID, userID, role)
	if err != nil {
		return nil, err
	}
	s.store.Apply(store.ProjectMemberAdded{ProjectID: projectID, Member: *member})
	return member, nil
}

// RemoveProjectMember removes a user from a project.
func (s *WorkspaceService) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	if err := s.projectMembers.Remove(ctx, projectID, userID); err != nil {
		return err
	}
	s.store.Apply(store.ProjectMemberRemoved{ProjectID: projectID, UserID: userID})
	return nil
}

// CreateComment appends a comment to a task. Fire-and-forget: the tree keeps
// no comment state, so no mutation is applied.
func (s *WorkspaceService) CreateComment(ctx context.Context, fields domain.Fields) (*domain.Comment, error) {
	return s.commentRepo.Create(ctx, fields)
}

// projectPatch narrows the canonical row down to the fields the caller
// actually updated, so the store merge preserves everything else, including
// the nested task and member collections.
func projectPatch(p *domain.Project, fields domain.Fields) domain.ProjectPatch {
	patch := domain.ProjectPatch{ID: p.ID}
	for key := range fields {
		switch key {
		case "name":
			patch.Name = &p.Name
		case "description":
			patch.Description = &p.Description
		case "status":
			patch.Status = &p.Status
		case "priority":
			patch.Priority = &p.Priority
		case "color":
			patch.Color = &p.Color
		case "visibility":
			patch.Visibility = &p.Visibility
		case "default_role":
			patch.DefaultRole = &p.DefaultRole
		case "default_task_status":
			patch.DefaultTaskStatus = &p.DefaultTaskStatus
		case "default_task_priority":
			patch.DefaultTaskPriority = &p.DefaultTaskPriority
		case "start_date":
			patch.StartDate = p.StartDate
		case "end_date":
			patch.EndDate = p.EndDate
		case "team_lead":
			patch.TeamLead = p.TeamLead
		case "progress":
			patch.Progress = &p.Progress
		}
	}
	return patch
}
