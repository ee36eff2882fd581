package postgres

import (
	"context"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(image, ''), created_at, updated_at`

const upsertUserQuery = `
	INSERT INTO users (id, name, email, image)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		image = EXCLUDED.image,
		updated_at = now()
	RETURNING ` + userColumns

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert writes a user profile keyed on id.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, upsertUserQuery, user.ID, user.Name, user.Email, user.Image))
	if err != nil {
		return nil, domain.NewBackendError("users.upsert", err)
	}
	return u, nil
}

// UpsertBatch writes every profile in one round trip.
func (r *UserRepository) UpsertBatch(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(upsertUserQuery, u.ID, u.Name, u.Email, u.Image)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return domain.NewBackendError("users.upsertBatch", err)
	}
	return nil
}

// loadUserProfiles fetches the given user ids as member snapshots (no role).
// Used to flatten joins for team leads, assignees, and comment authors.
func loadUserProfiles(ctx context.Context, pool *pgxpool.Pool, ids []string) (map[string]domain.Member, error) {
	out := make(map[string]domain.Member, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(image, '')
		FROM users WHERE id = ANY($1)`
	rows, err := pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Image); err != nil {
			return nil, err
		}
		out[m.UserID] = m
	}
	return out, rows.Err()
}
