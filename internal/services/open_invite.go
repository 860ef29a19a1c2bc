package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recordclubs/internal/domain"
)

type openInviteService struct {
	openInviteRepo domain.OpenInviteRepository
	membershipRepo domain.MembershipRepository
	clubRepo       domain.ClubRepository
	contextTimeout time.Duration
}

// NewOpenInviteService creates an OpenInviteService with the given repositories.
func NewOpenInviteService(
	openInviteRepo domain.OpenInviteRepository,
	membershipRepo domain.MembershipRepository,
	clubRepo domain.ClubRepository,
	timeout time.Duration,
) domain.OpenInviteService {
	return &openInviteService{
		openInviteRepo: openInviteRepo,
		membershipRepo: membershipRepo,
		clubRepo:       clubRepo,
		contextTimeout: timeout,
	}
}

// MintOpenInvite creates a fresh share token for the club. Any previously
// live token is revoked first so at most one canonical token exists; this is
// application logic, not a uniqueness constraint.
func (s *openInviteService) MintOpenInvite(ctx context.Context, clubID, actorID string) (*domain.OpenInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	if _, err := requireOwner(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.openInviteRepo.RevokeAllByClubID(ctx, clubID, now); err != nil {
		return nil, fmt.Errorf("revoke previous open invites: %w", err)
	}

	inv := &domain.OpenInvite{
		ClubID:    clubID,
		Token:     uuid.NewString(),
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if err := s.openInviteRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create open invite: %w", err)
	}
	return inv, nil
}

func (s *openInviteService) GetOpenInvite(ctx context.Context, clubID, actorID string) (*domain.OpenInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return nil, err
	}
	inv, err := s.openInviteRepo.GetCurrentByClubID(ctx, clubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get open invite: %w", err)
	}
	return inv, nil
}

func (s *openInviteService) RevokeOpenInvite(ctx context.Context, clubID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireOwner(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return err
	}
	if err := s.openInviteRepo.RevokeAllByClubID(ctx, clubID, time.Now()); err != nil {
		return fmt.Errorf("revoke open invites: %w", err)
	}
	return nil
}

// RedeemOpenInvite joins the bearer to the club. Tokens are multi-use: no
// per-user consumption is tracked, so many distinct users may redeem the
// same token. A revoked token behaves like a dead link.
func (s *openInviteService) RedeemOpenInvite(ctx context.Context, token, userID string) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.openInviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get open invite: %w", err)
	}
	if inv.Revoked() {
		return nil, domain.ErrNotFound
	}

	m, err := s.membershipRepo.GetByClubAndUser(ctx, inv.ClubID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if m != nil {
		switch m.Status() {
		case domain.StatusActive:
			return nil, domain.ErrAlreadyMember
		case domain.StatusBlocked:
			return nil, domain.ErrBlocked
		}
	}

	if err := s.openInviteRepo.Redeem(ctx, inv.ClubID, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("redeem open invite: %w", err)
	}

	club, err := s.clubRepo.GetByID(ctx, inv.ClubID)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	return club, nil
}
