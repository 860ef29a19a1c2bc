package domain

import (
	"context"
	"time"
)

// ScheduledAlbum is an album a club has scheduled to listen to together.
// swagger:model ScheduledAlbum
type ScheduledAlbum struct {
	ID           string    `json:"id"`
	ClubID       string    `json:"club_id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	CoverURL     string    `json:"cover_url"`
	ScheduledFor time.Time `json:"scheduled_for"`
	AddedBy      string    `json:"added_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewScheduledAlbum returns a new ScheduledAlbum. ID is typically set by the
// repository on create.
func NewScheduledAlbum(clubID, title, artist, coverURL string, scheduledFor time.Time, addedBy string, createdAt time.Time) *ScheduledAlbum {
	return &ScheduledAlbum{
		ClubID:       clubID,
		Title:        title,
		Artist:       artist,
		CoverURL:     coverURL,
		ScheduledFor: scheduledFor,
		AddedBy:      addedBy,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// ScheduleRepository defines storage operations for the club listening schedule.
type ScheduleRepository interface {
	Create(ctx context.Context, album *ScheduledAlbum) error
	GetByID(ctx context.Context, id string) (*ScheduledAlbum, error)
	ListByClubID(ctx context.Context, clubID string, from *time.Time) ([]*ScheduledAlbum, error)
	UpdateScheduledFor(ctx context.Context, id string, scheduledFor, updatedAt time.Time) (*ScheduledAlbum, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleService defines listening schedule operations. Mutations require
// an owner or admin role; listing requires active membership.
type ScheduleService interface {
	AddAlbum(ctx context.Context, clubID, actorID string, album *ScheduledAlbum) error
	RescheduleAlbum(ctx context.Context, clubID, albumID, actorID string, scheduledFor time.Time) (*ScheduledAlbum, error)
	RemoveAlbum(ctx context.Context, clubID, albumID, actorID string) error
	ListSchedule(ctx context.Context, clubID, callerID string, from *time.Time) ([]*ScheduledAlbum, error)
}
