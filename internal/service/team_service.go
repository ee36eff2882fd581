package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fizzhq/fizz/fizz-client/internal/identity"
)

// TeamService surfaces the identity provider's invitation management to the
// presentation layer. Pure pass-through; invitations never enter the store.
type TeamService struct {
	provider identity.Provider
}

// NewTeamService creates a new TeamService
func NewTeamService(provider identity.Provider) *TeamService {
	return &TeamService{provider: provider}
}

// PendingInvitations lists the organization's open invitations.
func (s *TeamService) PendingInvitations(ctx context.Context, orgID string) ([]identity.Invitation, error) {
	invitations, err := s.provider.Invitations(ctx, orgID)
	if err != nil {
		log.Error().Err(err).Str("org_id", orgID).Msg("Failed to fetch invitations")
		return nil, err
	}
	return invitations, nil
}

// RevokeInvitation withdraws a pending invitation.
func (s *TeamService) RevokeInvitation(ctx context.Context, orgID, invitationID string) error {
	if err := s.provider.RevokeInvitation(ctx, orgID, invitationID); err != nil {
		log.Error().Err(err).Str("invitation_id", invitationID).Msg("Failed to revoke invitation")
		return err
	}
	return nil
}
