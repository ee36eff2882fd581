package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/store"
	"github.com/fizzhq/fizz/fizz-client/internal/testutil"
)

type workspaceFixture struct {
	projectRepo    *testutil.MockProjectRepository
	taskRepo       *testutil.MockTaskRepository
	memberRepo     *testutil.MockWorkspaceMemberRepository
	projectMembers *testutil.MockProjectMemberRepository
	commentRepo    *testutil.MockCommentRepository
	store          *store.Store
	svc            *WorkspaceService
}

// newWorkspaceFixture seeds the store with one workspace holding two projects,
// the first of which carries two tasks.
func newWorkspaceFixture() *workspaceFixture {
	f := &workspaceFixture{
		projectRepo:    testutil.NewMockProjectRepository(),
		taskRepo:       testutil.NewMockTaskRepository(),
		memberRepo:     testutil.NewMockWorkspaceMemberRepository(),
		projectMembers: testutil.NewMockProjectMemberRepository(),
		commentRepo:    testutil.NewMockCommentRepository(),
		store:          store.New(),
	}
	f.svc = NewWorkspaceService(
		f.projectRepo, f.taskRepo, f.memberRepo, f.projectMembers, f.commentRepo, f.store)

	f.store.Apply(store.WorkspaceSet{Workspace: domain.Workspace{ID: "W1", Name: "Acme"}})
	f.store.Apply(store.ProjectsFetched{Projects: []domain.Project{
		{
			ID:          "P1",
			WorkspaceID: "W1",
			Name:        "Alpha",
			Status:      domain.ProjectStatusActive,
			Tasks: []domain.Task{
				{ID: "T1", ProjectID: "P1", Title: "First"},
				{ID: "T2", ProjectID: "P1", Title: "Second"},
			},
			Members: []domain.Member{{UserID: "user_1", Role: domain.RoleAdmin}},
		},
		{
			ID:          "P2",
			WorkspaceID: "W1",
			Name:        "Beta",
			Tasks:       []domain.Task{{ID: "T9", ProjectID: "P2", Title: "Ninth"}},
		},
	}})
	return f
}

func TestCreateTask_PrependsIntoOwningProject(t *testing.T) {
	f := newWorkspaceFixture()
	f.taskRepo.CreateFn = func(fields domain.Fields) (*domain.Task, error) {
		return &domain.Task{ID: "T3", ProjectID: "P1", Title: "Third"}, nil
	}

	task, err := f.svc.CreateTask(context.Background(), domain.Fields{
		"project_id": "P1",
		"title":      "Third",
	})
	require.NoError(t, err)
	assert.Equal(t, "T3", task.ID)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects[0].Tasks, 3)
	assert.Equal(t, "T3", ws.Projects[0].Tasks[0].ID)
	assert.Equal(t, "T1", ws.Projects[0].Tasks[1].ID)
	// The sibling project is untouched.
	assert.Len(t, ws.Projects[1].Tasks, 1)
}

func TestCreateTask_GatewayFailureLeavesStoreUntouched(t *testing.T) {
	f := newWorkspaceFixture()
	before := f.store.CurrentWorkspace()
	f.taskRepo.Err = errors.New("insert failed")

	_, err := f.svc.CreateTask(context.Background(), domain.Fields{"project_id": "P1"})
	require.Error(t, err)
	assert.Equal(t, before, f.store.CurrentWorkspace())
}

func TestUpdateProject_MergePreservesUnchangedFields(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectRepo.UpdateFn = func(id string, fields domain.Fields) (*domain.Project, error) {
		// The canonical row comes back without nested collections, as the
		// backend returns columns only.
		return &domain.Project{ID: id, Name: "Alpha v2", Status: domain.ProjectStatusPlanning}, nil
	}

	_, err := f.svc.UpdateProject(context.Background(), "P1", domain.Fields{"name": "Alpha v2"})
	require.NoError(t, err)

	ws := f.store.CurrentWorkspace()
	p := ws.Projects[0]
	assert.Equal(t, "Alpha v2", p.Name)
	// Only name was updated: status keeps its stored value even though the
	// returned row carried a different one, and the nested collections
	// survive.
	assert.Equal(t, domain.ProjectStatusActive, p.Status)
	assert.Len(t, p.Tasks, 2)
	assert.Len(t, p.Members, 1)
}

func TestUpdateTask_ReplacesStoredEntryWholesale(t *testing.T) {
	f := newWorkspaceFixture()
	f.taskRepo.UpdateFn = func(id string, fields domain.Fields) (*domain.Task, error) {
		return &domain.Task{ID: id, ProjectID: "P1", Title: "First, done", Status: domain.TaskStatusDone}, nil
	}

	_, err := f.svc.UpdateTask(context.Background(), "T1", domain.Fields{"status": "DONE"})
	require.NoError(t, err)

	ws := f.store.CurrentWorkspace()
	got := ws.Projects[0].Tasks[0]
	assert.Equal(t, "T1", got.ID)
	assert.Equal(t, domain.TaskStatusDone, got.Status)
	assert.Equal(t, "First, done", got.Title)
}

func TestDeleteTasks_SweepsOnlyNamedIDs(t *testing.T) {
	f := newWorkspaceFixture()

	require.NoError(t, f.svc.DeleteTasks(context.Background(), "T9"))

	ws := f.store.CurrentWorkspace()
	assert.Len(t, ws.Projects[0].Tasks, 2)
	assert.Empty(t, ws.Projects[1].Tasks)
}

func TestDeleteTasks_SweepsAcrossProjects(t *testing.T) {
	f := newWorkspaceFixture()

	require.NoError(t, f.svc.DeleteTasks(context.Background(), "T1", "T9"))

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects[0].Tasks, 1)
	assert.Equal(t, "T2", ws.Projects[0].Tasks[0].ID)
	assert.Empty(t, ws.Projects[1].Tasks)
}

func TestCreateProject_PrependsToCollection(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectRepo.CreateFn = func(fields domain.Fields) (*domain.Project, error) {
		return &domain.Project{ID: "P3", WorkspaceID: "W1", Name: "Gamma"}, nil
	}

	_, err := f.svc.CreateProject(context.Background(), domain.Fields{
		"workspace_id": "W1",
		"name":         "Gamma",
	})
	require.NoError(t, err)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects, 3)
	assert.Equal(t, "P3", ws.Projects[0].ID)
}

func TestDeleteProject_RemovesFromCollection(t *testing.T) {
	f := newWorkspaceFixture()

	require.NoError(t, f.svc.DeleteProject(context.Background(), "P1"))

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects, 1)
	assert.Equal(t, "P2", ws.Projects[0].ID)
}

func TestFetchProjects_ReplacesCollection(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectRepo.Projects["P5"] = &domain.Project{ID: "P5", WorkspaceID: "W1", Name: "Fresh"}

	projects, err := f.svc.FetchProjects(context.Background(), "W1")
	require.NoError(t, err)
	require.Len(t, projects, 1)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects, 1)
	assert.Equal(t, "P5", ws.Projects[0].ID)
}

func TestFetchProject_UpsertsSingleProject(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectRepo.Projects["P1"] = &domain.Project{
		ID: "P1", WorkspaceID: "W1", Name: "Alpha reloaded",
		Tasks: []domain.Task{{ID: "T1", ProjectID: "P1"}},
	}

	_, err := f.svc.FetchProject(context.Background(), "P1")
	require.NoError(t, err)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects, 2)
	assert.Equal(t, "Alpha reloaded", ws.Projects[0].Name)
	assert.Len(t, ws.Projects[0].Tasks, 1)
}

func TestFetchWorkspaceMembers_ReplacesMemberList(t *testing.T) {
	f := newWorkspaceFixture()
	f.memberRepo.Members["W1"] = []domain.Member{
		{UserID: "user_1", Name: "Ada", Role: domain.RoleAdmin},
		{UserID: "user_2", Name: "Grace", Role: domain.RoleMember},
	}

	members, err := f.svc.FetchWorkspaceMembers(context.Background(), "W1")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Members, 2)
	assert.Equal(t, "Ada", ws.Members[0].Name)
}

func TestAddProjectMember_AppendsJoinedProfile(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectMembers.Profiles["user_2"] = domain.Member{
		UserID: "user_2", Name: "Grace", Email: "grace@acme.dev",
	}

	member, err := f.svc.AddProjectMember(context.Background(), "P1", "user_2", domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "Grace", member.Name)

	ws := f.store.CurrentWorkspace()
	require.Len(t, ws.Projects[0].Members, 2)
	assert.Equal(t, "user_2", ws.Projects[0].Members[1].UserID)
}

func TestRemoveProjectMember_RemovesFromProject(t *testing.T) {
	f := newWorkspaceFixture()

	require.NoError(t, f.svc.RemoveProjectMember(context.Background(), "P1", "user_1"))

	ws := f.store.CurrentWorkspace()
	assert.Empty(t, ws.Projects[0].Members)
}

func TestCreateComment_AppliesNoMutation(t *testing.T) {
	f := newWorkspaceFixture()
	before := f.store.CurrentWorkspace()

	comment, err := f.svc.CreateComment(context.Background(), domain.Fields{
		"task_id": "T1",
		"user_id": "user_1",
		"body":    "Looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, "Looks good", comment.Body)
	assert.Equal(t, before, f.store.CurrentWorkspace())
}

func TestUpdateProject_MissingTargetIsNoOp(t *testing.T) {
	f := newWorkspaceFixture()
	f.projectRepo.UpdateFn = func(id string, fields domain.Fields) (*domain.Project, error) {
		return &domain.Project{ID: id, Name: "Ghost"}, nil
	}
	before := f.store.CurrentWorkspace()

	// The backend settled but the project is no longer loaded: the store
	// silently drops the merge.
	_, err := f.svc.UpdateProject(context.Background(), "P404", domain.Fields{"name": "Ghost"})
	require.NoError(t, err)
	assert.Equal(t, before, f.store.CurrentWorkspace())
}
