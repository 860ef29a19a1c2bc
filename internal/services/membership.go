package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recordclubs/internal/domain"
)

type membershipService struct {
	membershipRepo domain.MembershipRepository
	clubRepo       domain.ClubRepository
	contextTimeout time.Duration
}

// NewMembershipService creates a MembershipService with the given repositories.
func NewMembershipService(membershipRepo domain.MembershipRepository, clubRepo domain.ClubRepository, timeout time.Duration) domain.MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		clubRepo:       clubRepo,
		contextTimeout: timeout,
	}
}

// ResolveStatus determines the user's standing from the membership row, if
// any. Decision order: no row means non-member; a blocked stamp wins over an
// inactive one; otherwise active.
func (s *membershipService) ResolveStatus(ctx context.Context, clubID, userID string) (domain.MemberStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StatusNonMember, nil
		}
		return "", fmt.Errorf("get membership: %w", err)
	}
	return m.Status(), nil
}

func (s *membershipService) ListMembers(ctx context.Context, clubID, callerID string) ([]*domain.ClubMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireMember(ctx, s.membershipRepo, clubID, callerID); err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.ListByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.ClubMember{}
	}
	return members, nil
}

func (s *membershipService) Leave(ctx context.Context, clubID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if m.Role == domain.RoleOwner {
		// The owner role is never removable through membership mutations.
		return domain.ErrPermissionDenied
	}
	if m.Status() != domain.StatusActive {
		return domain.ErrConflict
	}
	if err := s.membershipRepo.SetInactive(ctx, clubID, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("set inactive: %w", err)
	}
	return nil
}

func (s *membershipService) Rejoin(ctx context.Context, clubID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	switch m.Status() {
	case domain.StatusBlocked:
		return domain.ErrBlocked
	case domain.StatusActive:
		return domain.ErrAlreadyMember
	}
	if err := s.membershipRepo.Reactivate(ctx, clubID, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("reactivate: %w", err)
	}
	return nil
}

func (s *membershipService) RemoveMember(ctx context.Context, clubID, targetUserID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	actor, err := requireManager(ctx, s.membershipRepo, clubID, actorID)
	if err != nil {
		return err
	}
	target, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if target.Role == domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	// Admins can only be removed by the owner.
	if target.Role == domain.RoleAdmin && actor.Role != domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	if target.Status() != domain.StatusActive {
		return domain.ErrConflict
	}
	if err := s.membershipRepo.SetInactive(ctx, clubID, targetUserID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("set inactive: %w", err)
	}
	return nil
}

func (s *membershipService) BlockMember(ctx context.Context, clubID, targetUserID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	actor, err := requireManager(ctx, s.membershipRepo, clubID, actorID)
	if err != nil {
		return err
	}
	target, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	// The owner can never be blocked; reject before any mutation.
	if target.Role == domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	if target.Role == domain.RoleAdmin && actor.Role != domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	if target.Status() == domain.StatusBlocked {
		return domain.ErrConflict
	}
	if err := s.membershipRepo.SetBlocked(ctx, clubID, targetUserID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("set blocked: %w", err)
	}
	return nil
}

func (s *membershipService) UnblockMember(ctx context.Context, clubID, targetUserID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return err
	}
	target, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if target.Status() != domain.StatusBlocked {
		return domain.ErrConflict
	}
	if err := s.membershipRepo.ClearBlocked(ctx, clubID, targetUserID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("clear blocked: %w", err)
	}
	return nil
}

func (s *membershipService) ChangeMemberRole(ctx context.Context, clubID, targetUserID, actorID string, role domain.MemberRole) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.Valid() || role == domain.RoleOwner {
		// Ownership is set at creation and never reassigned here.
		return domain.ErrInvalidInput
	}
	if _, err := requireOwner(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return err
	}
	target, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if target.Role == domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	if target.Status() != domain.StatusActive {
		return domain.ErrConflict
	}
	if err := s.membershipRepo.UpdateRole(ctx, clubID, targetUserID, role, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}
