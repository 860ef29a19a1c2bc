package domain

import (
	"context"
	"time"
)

// OpenInvite is a club-scoped, non-personalized invite token. Any bearer may
// redeem it while it is not revoked; redemption is not tracked per user, so
// the same token can be redeemed by many distinct users. Multiple rows can
// exist per club but only the newest non-revoked one is canonical: minting a
// fresh token revokes the others.
// swagger:model OpenInvite
type OpenInvite struct {
	ID        string     `json:"id"`
	ClubID    string     `json:"club_id"`
	Token     string     `json:"token"`
	CreatedBy string     `json:"created_by"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Revoked reports whether the token has been revoked.
func (o *OpenInvite) Revoked() bool {
	return o.RevokedAt != nil
}

// OpenInviteRepository defines storage operations for open invites.
type OpenInviteRepository interface {
	Create(ctx context.Context, inv *OpenInvite) error
	GetByToken(ctx context.Context, token string) (*OpenInvite, error)
	// GetCurrentByClubID returns the newest non-revoked open invite.
	GetCurrentByClubID(ctx context.Context, clubID string) (*OpenInvite, error)
	// RevokeAllByClubID revokes every live open invite for the club.
	RevokeAllByClubID(ctx context.Context, clubID string, at time.Time) error
	// Redeem inserts or reactivates a membership for the bearer. A concurrent
	// duplicate membership insert surfaces as ErrAlreadyMember.
	Redeem(ctx context.Context, clubID, userID string, at time.Time) error
}

// OpenInviteService defines the open invite lifecycle.
type OpenInviteService interface {
	// MintOpenInvite revokes any live token for the club and creates a fresh
	// one. Owner only.
	MintOpenInvite(ctx context.Context, clubID, actorID string) (*OpenInvite, error)
	GetOpenInvite(ctx context.Context, clubID, actorID string) (*OpenInvite, error)
	RevokeOpenInvite(ctx context.Context, clubID, actorID string) error
	RedeemOpenInvite(ctx context.Context, token, userID string) (*Club, error)
}
