package domain

import (
	"context"
	"time"
)

// Workspace is the top-level tenant scope. It owns the project collection and
// the workspace-level member list; exactly one workspace is current at a time.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  string    `json:"imageUrl"`
	OwnerID   string    `json:"ownerId"`
	Members   []Member  `json:"members"`
	Projects  []Project `json:"projects"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields is a loosely-typed set of column values supplied with a create or
// update intent. The gateway filters it down to a fixed per-entity allow-list
// before anything is sent to the relational store.
type Fields map[string]any

// WorkspaceRepository defines the interface for workspace persistence operations
type WorkspaceRepository interface {
	// Upsert writes the workspace record derived from organization metadata,
	// keyed on id. The owner id is a fallback attribution, not overwritten on
	// conflict.
	Upsert(ctx context.Context, workspace Workspace) (*Workspace, error)
}
