package domain

import (
	"context"
	"time"
)

// MemberRole is a user's role within a club.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Valid reports whether the role is one of the known club roles.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may perform privileged club mutations
// (invites, member administration, schedule edits).
func (r MemberRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// MemberStatus is the derived standing of a user within a club.
type MemberStatus string

const (
	StatusNonMember MemberStatus = "non_member"
	StatusActive    MemberStatus = "active"
	StatusInactive  MemberStatus = "inactive"
	StatusBlocked   MemberStatus = "blocked"
)

// Membership is the (club, user, role) relation. Status is never stored;
// it is derived from the two nullable timestamps so flags and status
// cannot drift apart. At most one membership exists per (club, user),
// enforced by a uniqueness constraint.
// swagger:model Membership
type Membership struct {
	ID         string     `json:"id"`
	ClubID     string     `json:"club_id"`
	UserID     string     `json:"user_id"`
	Role       MemberRole `json:"role"`
	InactiveAt *time.Time `json:"inactive_at"`
	BlockedAt  *time.Time `json:"blocked_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Status derives the membership standing. Blocked wins over inactive.
func (m *Membership) Status() MemberStatus {
	switch {
	case m.BlockedAt != nil:
		return StatusBlocked
	case m.InactiveAt != nil:
		return StatusInactive
	default:
		return StatusActive
	}
}

// NewMembership returns a new active Membership. ID is typically set by the
// repository on create.
func NewMembership(clubID, userID string, role MemberRole, createdAt time.Time) *Membership {
	return &Membership{
		ClubID:    clubID,
		UserID:    userID,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// ClubMember bundles a membership with the member's public user fields for
// member listings.
// swagger:model ClubMember
type ClubMember struct {
	ClubID string       `json:"club_id"`
	UserID string       `json:"user_id"`
	Handle string       `json:"handle"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Role   MemberRole   `json:"role"`
	Status MemberStatus `json:"status"`
}

// MembershipRepository defines the interface for membership storage.
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	GetByClubAndUser(ctx context.Context, clubID, userID string) (*Membership, error)
	ListByClubID(ctx context.Context, clubID string) ([]*ClubMember, error)
	// SetInactive stamps inactive_at on an active membership.
	SetInactive(ctx context.Context, clubID, userID string, at time.Time) error
	// Reactivate clears inactive_at on an inactive, non-blocked membership.
	Reactivate(ctx context.Context, clubID, userID string, at time.Time) error
	// SetBlocked stamps blocked_at and forces the role to member.
	SetBlocked(ctx context.Context, clubID, userID string, at time.Time) error
	// ClearBlocked removes the block; the membership becomes inactive so the
	// user rejoins explicitly.
	ClearBlocked(ctx context.Context, clubID, userID string, at time.Time) error
	UpdateRole(ctx context.Context, clubID, userID string, role MemberRole, at time.Time) error
}

// MembershipService defines membership lifecycle operations.
type MembershipService interface {
	// ResolveStatus determines the user's current standing in the club.
	// Pure read; no side effects.
	ResolveStatus(ctx context.Context, clubID, userID string) (MemberStatus, error)
	ListMembers(ctx context.Context, clubID, callerID string) ([]*ClubMember, error)
	Leave(ctx context.Context, clubID, userID string) error
	Rejoin(ctx context.Context, clubID, userID string) error
	RemoveMember(ctx context.Context, clubID, targetUserID, actorID string) error
	BlockMember(ctx context.Context, clubID, targetUserID, actorID string) error
	UnblockMember(ctx context.Context, clubID, targetUserID, actorID string) error
	ChangeMemberRole(ctx context.Context, clubID, targetUserID, actorID string, role MemberRole) error
}
