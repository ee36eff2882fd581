package store

import (
	"sync"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
)

// Options tunes store behavior.
type Options struct {
	// DedupeCreates drops ProjectCreated and ProjectMemberAdded mutations
	// whose id is already present, guarding against duplicate entries from
	// retried responses. Off by default to keep historical behavior: a
	// repeated create settles as a duplicate entry.
	DedupeCreates bool
}

// Store holds the nested entity tree for the active workspace. It is the
// single piece of shared mutable state; every change goes through Apply, which
// serializes mutations, and reads hand out deep copies so callers can never
// alias internal state. Stale or irrelevant results (no current workspace,
// project not loaded, entity missing) are dropped silently, never errors.
type Store struct {
	mu      sync.RWMutex
	opts    Options
	current *domain.Workspace
}

// New creates an empty store with default options.
func New() *Store {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty store.
func NewWithOptions(opts Options) *Store {
	return &Store{opts: opts}
}

// CurrentWorkspace returns a deep copy of the active workspace, or nil when no
// workspace is current.
func (s *Store) CurrentWorkspace() *domain.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWorkspace(s.current)
}

// CurrentWorkspaceID returns the active workspace id, or "" when none.
func (s *Store) CurrentWorkspaceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Reset tears down the current workspace, returning the store to its initial
// empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Apply merges one mutation into the tree. Mutations are deterministic over
// the previous state and atomic with respect to concurrent callers.
func (s *Store) Apply(m Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := m.(type) {
	case WorkspaceSet:
		s.applyWorkspaceSet(m)
	case ProjectsFetched:
		s.applyProjectsFetched(m)
	case ProjectCreated:
		s.applyProjectCreated(m)
	case ProjectFetched:
		s.applyProjectFetched(m)
	case ProjectUpdated:
		s.applyProjectUpdated(m)
	case ProjectDeleted:
		s.applyProjectDeleted(m)
	case TaskCreated:
		s.applyTaskCreated(m)
	case TaskUpdated:
		s.applyTaskUpdated(m)
	case TasksDeleted:
		s.applyTasksDeleted(m)
	case WorkspaceMembersFetched:
		s.applyWorkspaceMembersFetched(m)
	case ProjectMemberAdded:
		s.applyProjectMemberAdded(m)
	case ProjectMemberRemoved:
		s.applyProjectMemberRemoved(m)
	}
}

func (s *Store) applyWorkspaceSet(m WorkspaceSet) {
	if s.current != nil && s.current.ID == m.Workspace.ID {
		return
	}
	next := cloneWorkspace(&m.Workspace)
	if next.Projects == nil {
		next.Projects = []domain.Project{}
	}
	s.current = next
}

func (s *Store) applyProjectsFetched(m ProjectsFetched) {
	if s.current == nil {
		return
	}
	s.current.Projects = cloneProjects(m.Projects)
}

func (s *Store) applyProjectCreated(m ProjectCreated) {
	if s.current == nil {
		return
	}
	if s.opts.DedupeCreates && s.findProject(m.Project.ID) != nil {
		return
	}
	p := cloneProject(m.Project)
	s.current.Projects = append([]domain.Project{p}, s.current.Projects...)
}

func (s *Store) applyProjectFetched(m ProjectFetched) {
	if s.current == nil {
		return
	}
	p := cloneProject(m.Project)
	for i := range s.current.Projects {
		if s.current.Projects[i].ID == p.ID {
			s.current.Projects[i] = p
			return
		}
	}
	s.current.Projects = append(s.current.Projects, p)
}

func (s *Store) applyProjectUpdated(m ProjectUpdated) {
	p := s.findProject(m.Patch.ID)
	if p == nil {
		return
	}
	mergeProject(p, m.Patch)
}

func (s *Store) applyProjectDeleted(m ProjectDeleted) {
	if s.current == nil {
		return
	}
	kept := s.current.Projects[:0]
	for _, p := range s.current.Projects {
		if p.ID != m.ID {
			kept = append(kept, p)
		}
	}
	s.current.Projects = kept
}

func (s *Store) applyTaskCreated(m TaskCreated) {
	p := s.findProject(m.Task.ProjectID)
	if p == nil {
		return
	}
	t := cloneTask(m.Task)
	p.Tasks = append([]domain.Task{t}, p.Tasks...)
}

func (s *Store) applyTaskUpdated(m TaskUpdated) {
	p := s.findProject(m.Task.ProjectID)
	if p == nil {
		return
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == m.Task.ID {
			p.Tasks[i] = cloneTask(m.Task)
			return
		}
	}
}

func (s *Store) applyTasksDeleted(m TasksDeleted) {
	if s.current == nil {
		return
	}
	ids := make(map[string]struct{}, len(m.IDs))
	for _, id := range m.IDs {
		ids[id] = struct{}{}
	}
	for i := range s.current.Projects {
		p := &s.current.Projects[i]
		if p.Tasks == nil {
			continue
		}
		kept := p.Tasks[:0]
		for _, t := range p.Tasks {
			if _, gone := ids[t.ID]; !gone {
				kept = append(kept, t)
			}
		}
		p.Tasks = kept
	}
}

func (s *Store) applyWorkspaceMembersFetched(m WorkspaceMembersFetched) {
	if s.current == nil {
		return
	}
	s.current.Members = cloneMembers(m.Members)
}

func (s *Store) applyProjectMemberAdded(m ProjectMemberAdded) {
	p := s.findProject(m.ProjectID)
	if p == nil {
		return
	}
	if s.opts.DedupeCreates {
		for _, mem := range p.Members {
			if mem.UserID == m.Member.UserID {
				return
			}
		}
	}
	p.Members = append(p.Members, m.Member)
}

func (s *Store) applyProjectMemberRemoved(m ProjectMemberRemoved) {
	p := s.findProject(m.ProjectID)
	if p == nil || p.Members == nil {
		return
	}
	kept := p.Members[:0]
	for _, mem := range p.Members {
		if mem.UserID != m.UserID {
			kept = append(kept, mem)
		}
	}
	p.Members = kept
}

// findProject returns a pointer into the live tree; callers hold the lock.
func (s *Store) findProject(id string) *domain.Project {
	if s.current == nil {
		return nil
	}
	for i := range s.current.Projects {
		if s.current.Projects[i].ID == id {
			return &s.current.Projects[i]
		}
	}
	return nil
}

func mergeProject(p *domain.Project, patch domain.ProjectPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Visibility != nil {
		p.Visibility = *patch.Visibility
	}
	if patch.DefaultRole != nil {
		p.DefaultRole = *patch.DefaultRole
	}
	if patch.DefaultTaskStatus != nil {
		p.DefaultTaskStatus = *patch.DefaultTaskStatus
	}
	if patch.DefaultTaskPriority != nil {
		p.DefaultTaskPriority = *patch.DefaultTaskPriority
	}
	if patch.StartDate != nil {
		d := *patch.StartDate
		p.StartDate = &d
	}
	if patch.EndDate != nil {
		d := *patch.EndDate
		p.EndDate = &d
	}
	if patch.TeamLead != nil {
		lead := *patch.TeamLead
		p.TeamLead = &lead
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
}
