package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/identity"
	"github.com/fizzhq/fizz/fizz-client/internal/store"
)

// SyncService sequences the organization-switch workflow so dependent writes
// never violate foreign-key ordering: the workspace row and every member's
// user row must exist before membership rows, and all three before any fetch
// that joins against them.
type SyncService struct {
	workspaceRepo domain.WorkspaceRepository
	userRepo      domain.UserRepository
	memberRepo    domain.WorkspaceMemberRepository
	provider      identity.Provider
	workspaces    *WorkspaceService
	store         *store.Store
}

// NewSyncService creates a new SyncService
func NewSyncService(
	workspaceRepo domain.WorkspaceRepository,
	userRepo domain.UserRepository,
	memberRepo domain.WorkspaceMemberRepository,
	provider identity.Provider,
	workspaces *WorkspaceService,
	st *store.Store,
) *SyncService {
	return &SyncService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		provider:      provider,
		workspaces:    workspaces,
		store:         st,
	}
}

// ActivateWorkspace runs the ordered sync sequence for the given organization
// and the user acting as fallback owner:
//
//  1. upsert the workspace record,
//  2. enumerate the organization's memberships from the identity provider,
//  3. batch-upsert every member's user profile,
//  4. batch-upsert every membership with its normalized role,
//  5. set the current workspace and fetch projects and members concurrently.
//
// A failure in steps 1-4 aborts the sequence with a SyncError and leaves the
// store untouched, so the next organization change can retry. When the
// organization already is the current workspace the whole call is a no-op;
// a failed sequence is therefore only retried once the organization context
// actually changes.
func (s *SyncService) ActivateWorkspace(ctx context.Context, org identity.Organization, user identity.UserProfile) error {
	if s.store.CurrentWorkspaceID() == org.ID {
		return nil
	}

	workspace := domain.Workspace{
		ID:       org.ID,
		Name:     org.Name,
		Slug:     org.Slug,
		ImageURL: org.ImageURL,
		OwnerID:  user.ID,
	}
	if _, err := s.workspaceRepo.Upsert(ctx, workspace); err != nil {
		log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to sync workspace")
		return &domain.SyncError{Step: "workspace", Err: err}
	}

	memberships, err := s.provider.Memberships(ctx, org.ID)
	if err != nil {
		log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to enumerate memberships")
		return &domain.SyncError{Step: "memberships", Err: err}
	}

	users := make([]domain.User, len(memberships))
	rows := make([]domain.WorkspaceMembership, len(memberships))
	for i, m := range memberships {
		users[i] = domain.User{
			ID:    m.User.ID,
			Name:  m.User.DisplayName(),
			Email: m.User.Identifier,
			Image: m.User.ImageURL,
		}
		rows[i] = domain.WorkspaceMembership{
			WorkspaceID: org.ID,
			UserID:      m.User.ID,
			Role:        normalizeRole(m.Role),
		}
	}
	if err := s.userRepo.UpsertBatch(ctx, users); err != nil {
		log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to sync member profiles")
		return &domain.SyncError{Step: "users", Err: err}
	}
	if err := s.memberRepo.UpsertBatch(ctx, rows); err != nil {
		log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to sync memberships")
		return &domain.SyncError{Step: "members", Err: err}
	}

	s.store.Apply(store.WorkspaceSet{Workspace: domain.Workspace{
		ID:       org.ID,
		Name:     org.Name,
		Slug:     org.Slug,
		ImageURL: org.ImageURL,
		Projects: []domain.Project{},
	}})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.workspaces.FetchProjects(ctx, org.ID); err != nil {
			log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to fetch projects after sync")
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := s.workspaces.FetchWorkspaceMembers(ctx, org.ID); err != nil {
			log.Error().Err(err).Str("org_id", org.ID).Msg("Failed to fetch members after sync")
		}
	}()
	wg.Wait()

	log.Info().Str("org_id", org.ID).Int("members", len(memberships)).Msg("Workspace activated")
	return nil
}

// SyncUser mirrors the current user's profile into the relational store. Runs
// independently of the workspace sequence.
func (s *SyncService) SyncUser(ctx context.Context, user identity.UserProfile) error {
	_, err := s.userRepo.Upsert(ctx, domain.User{
		ID:    user.ID,
		Name:  user.DisplayName(),
		Email: user.Identifier,
		Image: user.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to sync user")
	}
	return err
}

// normalizeRole maps the provider's compound role string to the short enum:
// the suffix after the separator, upper-cased ("org:admin" becomes ADMIN).
// Anything without a suffix defaults to MEMBER.
func normalizeRole(raw string) domain.Role {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) == 2 && parts[1] != "" {
		return domain.Role(strings.ToUpper(parts[1]))
	}
	return domain.RoleMember
}
