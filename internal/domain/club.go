package domain

import (
	"context"
	"time"
)

// ClubVisibility controls whether a club is discoverable by non-members.
type ClubVisibility string

const (
	ClubVisibilityPublic  ClubVisibility = "public"
	ClubVisibilityPrivate ClubVisibility = "private"
)

// Club represents a record club: a group of users who schedule albums to
// listen to together. A club starts inactive and is activated by its owner
// once it is configured.
// swagger:model Club
type Club struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	LongDescription  string         `json:"long_description"`
	Visibility       ClubVisibility `json:"visibility"`
	Active           bool           `json:"active"`
	OwnerID          string         `json:"owner_id"`
	CreatedBy        string         `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewClub returns a new Club owned and created by the given user.
// ID is typically set by the repository on create.
func NewClub(name string, visibility ClubVisibility, ownerID string, createdAt, updatedAt time.Time) *Club {
	return &Club{
		Name:       name,
		Visibility: visibility,
		OwnerID:    ownerID,
		CreatedBy:  ownerID,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// ClubUpdate holds the mutable club fields for a partial update.
// Nil fields are left unchanged.
type ClubUpdate struct {
	Name             *string
	ShortDescription *string
	LongDescription  *string
	Visibility       *ClubVisibility
}

// ClubRepository defines the interface for club storage.
type ClubRepository interface {
	// CreateWithOwner inserts the club and its owner membership in a single
	// transaction; a failure in either aborts both.
	CreateWithOwner(ctx context.Context, club *Club) error
	GetByID(ctx context.Context, id string) (*Club, error)
	Update(ctx context.Context, id string, upd ClubUpdate, updatedAt time.Time) (*Club, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) (*Club, error)
	ListByMember(ctx context.Context, userID string) ([]*Club, error)
}

// ClubService defines club lifecycle operations.
type ClubService interface {
	CreateClub(ctx context.Context, club *Club) error
	GetClub(ctx context.Context, clubID, callerID string) (*Club, error)
	UpdateClub(ctx context.Context, clubID, actorID string, upd ClubUpdate) (*Club, error)
	ActivateClub(ctx context.Context, clubID, actorID string) (*Club, error)
	ListMyClubs(ctx context.Context, userID string) ([]*Club, error)
}
