package store

import (
	"time"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
)

// Deep copies. The store owns its tree outright: mutations copy payloads in,
// reads copy snapshots out.

func cloneWorkspace(w *domain.Workspace) *domain.Workspace {
	if w == nil {
		return nil
	}
	out := *w
	out.Members = cloneMembers(w.Members)
	out.Projects = cloneProjects(w.Projects)
	return &out
}

func cloneProjects(ps []domain.Project) []domain.Project {
	if ps == nil {
		return nil
	}
	out := make([]domain.Project, len(ps))
	for i := range ps {
		out[i] = cloneProject(ps[i])
	}
	return out
}

func cloneProject(p domain.Project) domain.Project {
	out := p
	out.StartDate = cloneTime(p.StartDate)
	out.EndDate = cloneTime(p.EndDate)
	out.TeamLead = cloneString(p.TeamLead)
	if p.TeamLeadUser != nil {
		lead := *p.TeamLeadUser
		out.TeamLeadUser = &lead
	}
	out.Members = cloneMembers(p.Members)
	if p.Tasks != nil {
		out.Tasks = make([]domain.Task, len(p.Tasks))
		for i := range p.Tasks {
			out.Tasks[i] = cloneTask(p.Tasks[i])
		}
	}
	return out
}

func cloneTask(t domain.Task) domain.Task {
	out := t
	out.AssigneeID = cloneString(t.AssigneeID)
	out.DueDate = cloneTime(t.DueDate)
	if t.Assignee != nil {
		a := *t.Assignee
		out.Assignee = &a
	}
	return out
}

func cloneMembers(ms []domain.Member) []domain.Member {
	if ms == nil {
		return nil
	}
	out := make([]domain.Member, len(ms))
	copy(out, ms)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
