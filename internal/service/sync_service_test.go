package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/identity"
	"github.com/fizzhq/fizz/fizz-client/internal/store"
	"github.com/fizzhq/fizz/fizz-client/internal/testutil"
)

type syncFixture struct {
	workspaceRepo *testutil.MockWorkspaceRepository
	userRepo      *testutil.MockUserRepository
	memberRepo    *testutil.MockWorkspaceMemberRepository
	projectRepo   *testutil.MockProjectRepository
	provider      *testutil.MockIdentityProvider
	store         *store.Store
	sync          *SyncService
	calls         *testutil.CallLog
}

func newSyncFixture() *syncFixture {
	calls := &testutil.CallLog{}

	workspaceRepo := testutil.NewMockWorkspaceRepository()
	workspaceRepo.Calls = calls
	userRepo := testutil.NewMockUserRepository()
	userRepo.Calls = calls
	memberRepo := testutil.NewMockWorkspaceMemberRepository()
	memberRepo.Calls = calls
	projectRepo := testutil.NewMockProjectRepository()
	projectRepo.Calls = calls
	provider := testutil.NewMockIdentityProvider()
	provider.Calls = calls

	st := store.New()
	workspaces := NewWorkspaceService(
		projectRepo,
		testutil.NewMockTaskRepository(),
		memberRepo,
		testutil.NewMockProjectMemberRepository(),
		testutil.NewMockCommentRepository(),
		st,
	)
	return &syncFixture{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		projectRepo:   projectRepo,
		provider:      provider,
		store:         st,
		sync:          NewSyncService(workspaceRepo, userRepo, memberRepo, provider, workspaces, st),
		calls:         calls,
	}
}

func orgFixture() identity.Organization {
	return identity.Organization{ID: "org_1", Name: "Acme", Slug: "acme", ImageURL: "https://img/acme.png"}
}

func userFixture() identity.UserProfile {
	return identity.UserProfile{ID: "user_1", FirstName: "Ada", LastName: "Lovelace", Identifier: "ada@acme.dev"}
}

func TestActivateWorkspace_RunsSequenceInOrder(t *testing.T) {
	f := newSyncFixture()
	f.provider.MembershipsByOrg["org_1"] = []identity.Membership{
		{User: userFixture(), Role: "org:admin"},
		{User: identity.UserProfile{ID: "user_2", Identifier: "grace@acme.dev"}, Role: "org:member"},
	}

	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())
	require.NoError(t, err)

	// Upserts strictly before the store transition and the dependent fetches.
	calls := f.calls.All()
	require.GreaterOrEqual(t, len(calls), 4)
	assert.Equal(t, []string{
		"workspaces.upsert",
		"identity.memberships",
		"users.upsertBatch",
		"workspaceMembers.upsertBatch",
	}, calls[:4])
	assert.Contains(t, calls[4:], "projects.getAll")
	assert.Contains(t, calls[4:], "workspaceMembers.getAll")

	ws := f.store.CurrentWorkspace()
	require.NotNil(t, ws)
	assert.Equal(t, "org_1", ws.ID)
	assert.Equal(t, "Acme", ws.Name)
	assert.NotNil(t, ws.Projects)
}

func TestActivateWorkspace_NormalizesRolesAndProfiles(t *testing.T) {
	f := newSyncFixture()
	f.provider.MembershipsByOrg["org_1"] = []identity.Membership{
		{User: userFixture(), Role: "org:admin"},
		{User: identity.UserProfile{ID: "user_2"}, Role: ""},
	}

	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())
	require.NoError(t, err)

	require.Len(t, f.memberRepo.Rows, 2)
	assert.Equal(t, domain.RoleAdmin, f.memberRepo.Rows[0].Role)
	assert.Equal(t, domain.RoleMember, f.memberRepo.Rows[1].Role)

	require.Contains(t, f.userRepo.Users, "user_1")
	assert.Equal(t, "Ada Lovelace", f.userRepo.Users["user_1"].Name)
	assert.Equal(t, "ada@acme.dev", f.userRepo.Users["user_1"].Email)
	// No name parts, no identifier: last-resort display name.
	assert.Equal(t, "User", f.userRepo.Users["user_2"].Name)
}

func TestActivateWorkspace_GuardSkipsCurrentOrg(t *testing.T) {
	f := newSyncFixture()
	require.NoError(t, f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture()))

	before := f.calls.Len()
	require.NoError(t, f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture()))
	assert.Equal(t, before, f.calls.Len())
}

func TestActivateWorkspace_WorkspaceFailureAborts(t *testing.T) {
	f := newSyncFixture()
	f.workspaceRepo.Err = errors.New("connection refused")

	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "workspace", syncErr.Step)
	assert.Nil(t, f.store.CurrentWorkspace())
	// Nothing past the failing step ran.
	assert.Equal(t, []string{"workspaces.upsert"}, f.calls.All())
}

func TestActivateWorkspace_MembershipFailureAborts(t *testing.T) {
	f := newSyncFixture()
	f.provider.Err = errors.New("identity provider down")

	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "memberships", syncErr.Step)
	assert.Nil(t, f.store.CurrentWorkspace())
}

func TestActivateWorkspace_UserBatchFailureAborts(t *testing.T) {
	f := newSyncFixture()
	f.userRepo.Err = errors.New("constraint violation")

	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "users", syncErr.Step)
	assert.Nil(t, f.store.CurrentWorkspace())
	assert.Empty(t, f.memberRepo.Rows)
}

func TestActivateWorkspace_RetriesAfterFailure(t *testing.T) {
	f := newSyncFixture()
	f.workspaceRepo.Err = errors.New("transient")
	require.Error(t, f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture()))

	// Guard still open: the workspace never became current.
	f.workspaceRepo.Err = nil
	require.NoError(t, f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture()))
	require.NotNil(t, f.store.CurrentWorkspace())
}

func TestActivateWorkspace_FetchFailureDoesNotFail(t *testing.T) {
	f := newSyncFixture()
	f.projectRepo.Err = errors.New("projects table locked")

	// The ordered sequence succeeded; the follow-up fetch failure is logged
	// only, and the workspace stays current with its empty project list.
	err := f.sync.ActivateWorkspace(context.Background(), orgFixture(), userFixture())
	require.NoError(t, err)

	ws := f.store.CurrentWorkspace()
	require.NotNil(t, ws)
	assert.Empty(t, ws.Projects)
}

func TestSyncUser_UpsertsProfile(t *testing.T) {
	f := newSyncFixture()

	require.NoError(t, f.sync.SyncUser(context.Background(), userFixture()))

	require.Contains(t, f.userRepo.Users, "user_1")
	assert.Equal(t, "Ada Lovelace", f.userRepo.Users["user_1"].Name)
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.Role
	}{
		{"org:admin", domain.RoleAdmin},
		{"org:member", domain.RoleMember},
		{"org:editor", domain.RoleEditor},
		{"admin", domain.RoleMember}, // no separator: default
		{"org:", domain.RoleMember},
		{"", domain.RoleMember},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeRole(tc.raw), "raw=%q", tc.raw)
	}
}
