package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/identity"
)

// Map-backed mocks for the gateway and identity interfaces. Every mock takes
// an optional shared CallLog for ordering assertions and accepts Fn overrides
// for custom behavior; a nil override falls back to a simple in-memory
// default.

// CallLog records mock invocations in order. Safe for concurrent use so the
// parallel fetches of the sync sequence can share one log.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Append records a call. A nil receiver is a no-op.
func (l *CallLog) Append(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// All returns a snapshot of the recorded calls.
func (l *CallLog) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.calls...)
}

// Len returns the number of recorded calls.
func (l *CallLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func stringField(fields domain.Fields, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// MockProjectRepository is a mock implementation of domain.ProjectRepository
type MockProjectRepository struct {
	Projects map[string]*domain.Project
	Calls    *CallLog
	Err      error
	CreateFn func(fields domain.Fields) (*domain.Project, error)
	UpdateFn func(id string, fields domain.Fields) (*domain.Project, error)
}

// NewMockProjectRepository creates a new MockProjectRepository
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]*domain.Project)}
}

func (m *MockProjectRepository) record(call string) {
	m.Calls.Append(call)
}

// GetByWorkspace retrieves the projects of a workspace
func (m *MockProjectRepository) GetByWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	m.record("projects.getAll")
	if m.Err != nil {
		return nil, m.Err
	}
	projects := []domain.Project{}
	for _, p := range m.Projects {
		if p.WorkspaceID == workspaceID {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

// GetByID retrieves a project by id
func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	m.record("projects.getById")
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

// Create creates a project from fields
func (m *MockProjectRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Project, error) {
	m.record("projects.create")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.CreateFn != nil {
		return m.CreateFn(fields)
	}
	p := &domain.Project{
		ID:          uuid.NewString(),
		WorkspaceID: stringField(fields, "workspace_id"),
		Name:        stringField(fields, "name"),
		Description: stringField(fields, "description"),
		Status:      domain.ProjectStatus(stringField(fields, "status")),
		Priority:    domain.Priority(stringField(fields, "priority")),
		Members:     []domain.Member{},
		Tasks:       []domain.Task{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.Projects[p.ID] = p
	copied := *p
	return &copied, nil
}

// Update applies fields to an existing project
func (m *MockProjectRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Project, error) {
	m.record("projects.update")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.UpdateFn != nil {
		return m.UpdateFn(id, fields)
	}
	p, ok := m.Projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["status"].(string); ok {
		p.Status = domain.ProjectStatus(v)
	}
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

// Delete removes a project
func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	m.record("projects.delete")
	if m.Err != nil {
		return m.Err
	}
	delete(m.Projects, id)
	return nil
}

// MockTaskRepository is a mock implementation of domain.TaskRepository
type MockTaskRepository struct {
	Tasks    map[string]*domain.Task
	Calls    *CallLog
	Err      error
	CreateFn func(fields domain.Fields) (*domain.Task, error)
	UpdateFn func(id string, fields domain.Fields) (*domain.Task, error)
}

// NewMockTaskRepository creates a new MockTaskRepository
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{Tasks: make(map[string]*domain.Task)}
}

func (m *MockTaskRepository) record(call string) {
	m.Calls.Append(call)
}

// GetByProject retrieves the tasks of a project
func (m *MockTaskRepository) GetByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	m.record("tasks.getByProject")
	if m.Err != nil {
		return nil, m.Err
	}
	tasks := []domain.Task{}
	for _, t := range m.Tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

// GetByID retrieves a task by id
func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	m.record("tasks.getById")
	if m.Err != nil {
		return nil, m.Err
	}
	if t, ok := m.Tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

// Create creates a task from fields
func (m *MockTaskRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Task, error) {
	m.record("tasks.create")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.CreateFn != nil {
		return m.CreateFn(fields)
	}
	t := &domain.Task{
		ID:        uuid.NewString(),
		ProjectID: stringField(fields, "project_id"),
		Title:     stringField(fields, "title"),
		Status:    domain.TaskStatus(stringField(fields, "status")),
		Priority:  domain.Priority(stringField(fields, "priority")),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Tasks[t.ID] = t
	copied := *t
	return &copied, nil
}

// Update applies fields to an existing task
func (m *MockTaskRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Task, error) {
	m.record("tasks.update")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.UpdateFn != nil {
		return m.UpdateFn(id, fields)
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := fields["title"].(string); ok {
		t.Title = v
	}
	if v, ok := fields["status"].(string); ok {
		t.Status = domain.TaskStatus(v)
	}
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

// Delete removes tasks by id
func (m *MockTaskRepository) Delete(ctx context.Context, ids ...string) error {
	m.record("tasks.delete")
	if m.Err != nil {
		return m.Err
	}
	for _, id := range ids {
		delete(m.Tasks, id)
	}
	return nil
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[string]*domain.Workspace
	Calls      *CallLog
	Err        error
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{Workspaces: make(map[string]*domain.Workspace)}
}

// Upsert writes a workspace keyed on id
func (m *MockWorkspaceRepository) Upsert(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error) {
	m.Calls.Append("workspaces.upsert")
	if m.Err != nil {
		return nil, m.Err
	}
	if existing, ok := m.Workspaces[workspace.ID]; ok {
		workspace.OwnerID = existing.OwnerID
	}
	m.Workspaces[workspace.ID] = &workspace
	copied := workspace
	return &copied, nil
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	Calls *CallLog
	Err   error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) record(call string) {
	m.Calls.Append(call)
}

// Upsert writes a user keyed on id
func (m *MockUserRepository) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	m.record("users.upsert")
	if m.Err != nil {
		return nil, m.Err
	}
	m.Users[user.ID] = &user
	copied := user
	return &copied, nil
}

// UpsertBatch writes every user keyed on id
func (m *MockUserRepository) UpsertBatch(ctx context.Context, users []domain.User) error {
	m.record("users.upsertBatch")
	if m.Err != nil {
		return m.Err
	}
	for _, u := range users {
		user := u
		m.Users[u.ID] = &user
	}
	return nil
}

// MockWorkspaceMemberRepository is a mock implementation of
// domain.WorkspaceMemberRepository
type MockWorkspaceMemberRepository struct {
	Members map[string][]domain.Member
	Rows    []domain.WorkspaceMembership
	Calls   *CallLog
	Err     error
}

// NewMockWorkspaceMemberRepository creates a new MockWorkspaceMemberRepository
func NewMockWorkspaceMemberRepository() *MockWorkspaceMemberRepository {
	return &MockWorkspaceMemberRepository{Members: make(map[string][]domain.Member)}
}

func (m *MockWorkspaceMemberRepository) record(call string) {
	m.Calls.Append(call)
}

// GetByWorkspace retrieves the member list of a workspace
func (m *MockWorkspaceMemberRepository) GetByWorkspace(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	m.record("workspaceMembers.getAll")
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Member{}, m.Members[workspaceID]...), nil
}

// UpsertBatch records every membership row
func (m *MockWorkspaceMemberRepository) UpsertBatch(ctx context.Context, memberships []domain.WorkspaceMembership) error {
	m.record("workspaceMembers.upsertBatch")
	if m.Err != nil {
		return m.Err
	}
	m.Rows = append(m.Rows, memberships...)
	return nil
}

// MockProjectMemberRepository is a mock implementation of
// domain.ProjectMemberRepository
type MockProjectMemberRepository struct {
	Profiles map[string]domain.Member
	Calls    *CallLog
	Err      error
}

// NewMockProjectMemberRepository creates a new MockProjectMemberRepository
func NewMockProjectMemberRepository() *MockProjectMemberRepository {
	return &MockProjectMemberRepository{Profiles: make(map[string]domain.Member)}
}

func (m *MockProjectMemberRepository) record(call string) {
	m.Calls.Append(call)
}

// Add returns the joined profile for the user, or a bare member when unknown
func (m *MockProjectMemberRepository) Add(ctx context.Context, projectID, userID string, role domain.Role) (*domain.Member, error) {
	m.record("projectMembers.add")
	if m.Err != nil {
		return nil, m.Err
	}
	member := domain.Member{UserID: userID, Role: role}
	if profile, ok := m.Profiles[userID]; ok {
		member.Name = profile.Name
		member.Email = profile.Email
		member.Image = profile.Image
	}
	return &member, nil
}

// Remove removes the membership
func (m *MockProjectMemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	m.record("projectMembers.remove")
	return m.Err
}

// MockCommentRepository is a mock implementation of domain.CommentRepository
type MockCommentRepository struct {
	Comments []domain.Comment
	Calls    *CallLog
	Err      error
}

// NewMockCommentRepository creates a new MockCommentRepository
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

// Create appends a comment
func (m *MockCommentRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Comment, error) {
	m.Calls.Append("comments.create")
	if m.Err != nil {
		return nil, m.Err
	}
	c := domain.Comment{
		ID:        uuid.NewString(),
		TaskID:    stringField(fields, "task_id"),
		UserID:    stringField(fields, "user_id"),
		Body:      stringField(fields, "body"),
		CreatedAt: time.Now(),
	}
	m.Comments = append(m.Comments, c)
	copied := c
	return &copied, nil
}

// MockIdentityProvider is a mock implementation of identity.Provider
type MockIdentityProvider struct {
	MembershipsByOrg map[string][]identity.Membership
	InvitationsByOrg map[string][]identity.Invitation
	Revoked          []string
	Calls            *CallLog
	Err              error
}

// NewMockIdentityProvider creates a new MockIdentityProvider
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		MembershipsByOrg: make(map[string][]identity.Membership),
		InvitationsByOrg: make(map[string][]identity.Invitation),
	}
}

func (m *MockIdentityProvider) record(call string) {
	m.Calls.Append(call)
}

// Memberships enumerates an organization's memberships
func (m *MockIdentityProvider) Memberships(ctx context.Context, orgID string) ([]identity.Membership, error) {
	m.record("identity.memberships")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.MembershipsByOrg[orgID], nil
}

// Invitations enumerates an organization's pending invitations
func (m *MockIdentityProvider) Invitations(ctx context.Context, orgID string) ([]identity.Invitation, error) {
	m.record("identity.invitations")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.InvitationsByOrg[orgID], nil
}

// RevokeInvitation records the revocation
func (m *MockIdentityProvider) RevokeInvitation(ctx context.Context, orgID, invitationID string) error {
	m.record("identity.revokeInvitation")
	if m.Err != nil {
		return m.Err
	}
	m.Revoked = append(m.Revoked, invitationID)
	return nil
}

// MockTextGenerator is a mock implementation of genai.TextGenerator
type MockTextGenerator struct {
	Response string
	Prompts  []string
	Err      error
}

// GenerateContent records the prompt and returns the canned response
func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
