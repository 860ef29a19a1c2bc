package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recordclubs/internal/domain"
)

type scheduleService struct {
	scheduleRepo   domain.ScheduleRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService with the given repositories.
func NewScheduleService(scheduleRepo domain.ScheduleRepository, membershipRepo domain.MembershipRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) AddAlbum(ctx context.Context, clubID, actorID string, album *domain.ScheduledAlbum) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return err
	}
	album.Title = strings.TrimSpace(album.Title)
	album.Artist = strings.TrimSpace(album.Artist)
	if album.Title == "" || album.Artist == "" || album.ScheduledFor.IsZero() {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	album.ClubID = clubID
	album.AddedBy = actorID
	album.CreatedAt = now
	album.UpdatedAt = now

	if err := s.scheduleRepo.Create(ctx, album); err != nil {
		return fmt.Errorf("create scheduled album: %w", err)
	}
	return nil
}

func (s *scheduleService) RescheduleAlbum(ctx context.Context, clubID, albumID, actorID string, scheduledFor time.Time) (*domain.ScheduledAlbum, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return nil, err
	}
	if scheduledFor.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	album, err := s.scheduleRepo.GetByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get scheduled album: %w", err)
	}
	if album.ClubID != clubID {
		return nil, domain.ErrNotFound
	}
	updated, err := s.scheduleRepo.UpdateScheduledFor(ctx, albumID, scheduledFor, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reschedule album: %w", err)
	}
	return updated, nil
}

func (s *scheduleService) RemoveAlbum(ctx context.Context, clubID, albumID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return err
	}
	album, err := s.scheduleRepo.GetByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get scheduled album: %w", err)
	}
	if album.ClubID != clubID {
		return domain.ErrNotFound
	}
	if err := s.scheduleRepo.Delete(ctx, albumID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete scheduled album: %w", err)
	}
	return nil
}

func (s *scheduleService) ListSchedule(ctx context.Context, clubID, callerID string, from *time.Time) ([]*domain.ScheduledAlbum, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireMember(ctx, s.membershipRepo, clubID, callerID); err != nil {
		return nil, err
	}
	albums, err := s.scheduleRepo.ListByClubID(ctx, clubID, from)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	if albums == nil {
		albums = []*domain.ScheduledAlbum{}
	}
	return albums, nil
}
