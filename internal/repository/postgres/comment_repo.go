package postgres

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository implements domain.CommentRepository using PostgreSQL
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a comment from allow-listed fields and returns it with the
// author profile joined in.
func (r *CommentRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Comment, error) {
	sanitized := sanitizeFields(fields, commentCreateColumns)
	query, args := insertQuery("comments", sanitized, "id, task_id, user_id, body, created_at")
	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.TaskID, &c.UserID, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, domain.NewBackendError("comments.create", err)
	}

	profiles, err := loadUserProfiles(ctx, r.pool, []string{c.UserID})
	if err != nil {
		return nil, domain.NewBackendError("comments.create", err)
	}
	if profile, ok := profiles[c.UserID]; ok {
		c.User = &profile
	}
	return &c, nil
}
