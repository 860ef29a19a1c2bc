package domain

import (
	"context"
	"time"
)

// DefaultInviteTTL is how long a personalized invite stays redeemable.
const DefaultInviteTTL = 28 * 24 * time.Hour

// InviteStatus is the derived state of a personalized invite.
type InviteStatus string

const (
	InviteStatusCreated  InviteStatus = "created"
	InviteStatusSent     InviteStatus = "sent"
	InviteStatusSeen     InviteStatus = "seen"
	InviteStatusRevoked  InviteStatus = "revoked"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite targets a single email address for one club. Status is a pure
// function of the nullable timestamps and is never stored independently.
// swagger:model Invite
type Invite struct {
	ID           string       `json:"id"`
	ClubID       string       `json:"club_id"`
	Email        string       `json:"email"`
	CreatedBy    string       `json:"created_by"`
	ExpiresAt    time.Time    `json:"expires_at"`
	SentAt       *time.Time   `json:"sent_at"`
	SendFailedAt *time.Time   `json:"send_failed_at"`
	SeenAt       *time.Time   `json:"seen_at"`
	RevokedAt    *time.Time   `json:"revoked_at"`
	AcceptedAt   *time.Time   `json:"accepted_at"`
	DeclinedAt   *time.Time   `json:"declined_at"`
	CreatedAt    time.Time    `json:"created_at"`
	Status       InviteStatus `json:"status"`
}

// inviteStatusRules is the single definition of the timestamp precedence
// used everywhere an invite status is computed. The first rule whose
// timestamp is set wins; if none is set the invite is merely created.
var inviteStatusRules = []struct {
	at     func(*Invite) *time.Time
	status InviteStatus
}{
	{func(i *Invite) *time.Time { return i.DeclinedAt }, InviteStatusDeclined},
	{func(i *Invite) *time.Time { return i.AcceptedAt }, InviteStatusAccepted},
	{func(i *Invite) *time.Time { return i.RevokedAt }, InviteStatusRevoked},
	{func(i *Invite) *time.Time { return i.SeenAt }, InviteStatusSeen},
	{func(i *Invite) *time.Time { return i.SentAt }, InviteStatusSent},
}

// DeriveStatus computes the invite status from its timestamps.
// The construction paths never set declined and accepted (or revoked)
// together, so the precedence order is only ever deciding between a
// terminal timestamp and the delivery-progress ones below it.
func (i *Invite) DeriveStatus() InviteStatus {
	for _, r := range inviteStatusRules {
		if r.at(i) != nil {
			return r.status
		}
	}
	return InviteStatusCreated
}

// Expired reports whether the invite's expiry has passed at the given time.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// NewInvite returns a new Invite for the given email with the default
// expiry. ID is typically set by the repository on create.
func NewInvite(clubID, email, createdBy string, createdAt time.Time) *Invite {
	return &Invite{
		ClubID:    clubID,
		Email:     email,
		CreatedBy: createdBy,
		ExpiresAt: createdAt.Add(DefaultInviteTTL),
		CreatedAt: createdAt,
	}
}

// InviteRepository defines storage operations for personalized invites.
type InviteRepository interface {
	Create(ctx context.Context, inv *Invite) error
	GetByID(ctx context.Context, id string) (*Invite, error)
	ListByClubID(ctx context.Context, clubID, search string, params PaginationParams) ([]*Invite, int, error)
	ListByEmail(ctx context.Context, email string) ([]*Invite, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkSendFailed(ctx context.Context, id string, at time.Time) error
	// Accept stamps accepted_at/seen_at on the invite and inserts or
	// reactivates the membership, all in a single transaction. A concurrent
	// duplicate membership insert surfaces as ErrAlreadyMember.
	Accept(ctx context.Context, inviteID, clubID, userID string, at time.Time) error
	Decline(ctx context.Context, id string, at time.Time) error
	Revoke(ctx context.Context, id string, at time.Time) error
}

// InviteService defines the personalized invite lifecycle.
type InviteService interface {
	// IssueInvites creates one invite per email and attempts delivery for
	// each. Delivery failures are recorded on the invite and do not roll
	// back creation; all created invites are returned.
	IssueInvites(ctx context.Context, clubID, issuerID string, emails []string) ([]*Invite, error)
	ListClubInvites(ctx context.Context, clubID, callerID, search string, params PaginationParams) ([]*Invite, int, error)
	ListMyInvites(ctx context.Context, userID string) ([]*Invite, error)
	AcceptInvite(ctx context.Context, inviteID, userID string) (*Club, error)
	DeclineInvite(ctx context.Context, inviteID, userID string) error
	RevokeInvite(ctx context.Context, inviteID, actorID string) error
}
