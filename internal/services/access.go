package services

import (
	"context"
	"errors"
	"fmt"

	"recordclubs/internal/domain"
)

// requireMember returns the actor's membership if it is active in the club.
// Non-members and inactive members get ErrPermissionDenied; blocked members
// get ErrBlocked.
func requireMember(ctx context.Context, memberships domain.MembershipRepository, clubID, actorID string) (*domain.Membership, error) {
	m, err := memberships.GetByClubAndUser(ctx, clubID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	switch m.Status() {
	case domain.StatusBlocked:
		return nil, domain.ErrBlocked
	case domain.StatusActive:
		return m, nil
	default:
		return nil, domain.ErrPermissionDenied
	}
}

// requireManager returns the actor's membership if it is active and holds
// the owner or admin role.
func requireManager(ctx context.Context, memberships domain.MembershipRepository, clubID, actorID string) (*domain.Membership, error) {
	m, err := requireMember(ctx, memberships, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if !m.Role.CanManage() {
		return nil, domain.ErrPermissionDenied
	}
	return m, nil
}

// requireOwner returns the actor's membership if it is the club's active owner.
func requireOwner(ctx context.Context, memberships domain.MembershipRepository, clubID, actorID string) (*domain.Membership, error) {
	m, err := requireMember(ctx, memberships, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if m.Role != domain.RoleOwner {
		return nil, domain.ErrPermissionDenied
	}
	return m, nil
}
