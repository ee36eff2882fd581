package domain

import (
	"context"
	"time"
)

// User represents a user profile mirrored from the identity provider into the
// relational store. Identity issues the id; this system never generates one.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// Upsert writes a user profile keyed on id.
	Upsert(ctx context.Context, user User) (*User, error)
	// UpsertBatch writes every profile in one round trip.
	UpsertBatch(ctx context.Context, users []User) error
}
