package domain

import (
	"context"
	"time"
)

// Comment is a note attached to a task. Comments are appended fire-and-forget;
// the in-memory tree does not retain them past the creation acknowledgment.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	User      *Member   `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentRepository defines the interface for comment persistence operations
type CommentRepository interface {
	// Create inserts a comment from allow-listed fields and returns it with
	// the author profile joined in.
	Create(ctx context.Context, fields Fields) (*Comment, error)
}
