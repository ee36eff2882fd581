// Package identity declares the contract of the external identity and
// organization provider. The provider is a collaborator, never reimplemented
// here: it owns authentication, organization membership, and invitations.
package identity

import (
	"context"
	"strings"
)

// Organization is the provider's organization record backing a workspace.
type Organization struct {
	ID       string
	Name     string
	Slug     string
	ImageURL string
}

// UserProfile is the provider's public user record.
type UserProfile struct {
	ID        string
	FirstName string
	LastName  string
	// Identifier is the provider's login identifier, normally the email.
	Identifier string
	ImageURL   string
}

// DisplayName derives the name stored in the relational mirror: first and
// last name when present, the login identifier otherwise, "User" as a last
// resort.
func (u UserProfile) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	if u.Identifier != "" {
		return u.Identifier
	}
	return "User"
}

// Membership links a user profile to an organization with the provider's
// compound role string (e.g. "org:admin").
type Membership struct {
	User UserProfile
	Role string
}

// Invitation is a pending organization invitation.
type Invitation struct {
	ID           string
	EmailAddress string
	Role         string
}

// Provider is the external identity service consumed by the sync and team
// services.
type Provider interface {
	// Memberships enumerates the organization's membership records.
	Memberships(ctx context.Context, orgID string) ([]Membership, error)
	// Invitations enumerates pending invitations for the organization.
	Invitations(ctx context.Context, orgID string) ([]Invitation, error)
	// RevokeInvitation withdraws a pending invitation.
	RevokeInvitation(ctx context.Context, orgID, invitationID string) error
}
