package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recordclubs/internal/domain"
)

type clubService struct {
	clubRepo       domain.ClubRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewClubService creates a ClubService with the given repositories.
func NewClubService(clubRepo domain.ClubRepository, membershipRepo domain.MembershipRepository, timeout time.Duration) domain.ClubService {
	return &clubService{
		clubRepo:       clubRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *clubService) CreateClub(ctx context.Context, club *domain.Club) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	club.Name = strings.TrimSpace(club.Name)
	if club.Name == "" {
		return domain.ErrInvalidInput
	}
	if club.OwnerID == "" {
		return fmt.Errorf("club owner is required")
	}
	if club.Visibility == "" {
		club.Visibility = domain.ClubVisibilityPrivate
	}
	if club.Visibility != domain.ClubVisibilityPublic && club.Visibility != domain.ClubVisibilityPrivate {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	club.CreatedBy = club.OwnerID
	club.Active = false
	club.CreatedAt = now
	club.UpdatedAt = now

	if err := s.clubRepo.CreateWithOwner(ctx, club); err != nil {
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func (s *clubService) GetClub(ctx context.Context, clubID, callerID string) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	if club.Visibility == domain.ClubVisibilityPublic {
		return club, nil
	}

	// Private clubs are only visible to their members. Non-members get
	// not-found rather than forbidden so the club's existence is not leaked.
	m, err := s.membershipRepo.GetByClubAndUser(ctx, clubID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if m.Status() == domain.StatusBlocked {
		return nil, domain.ErrBlocked
	}
	return club, nil
}

func (s *clubService) UpdateClub(ctx context.Context, clubID, actorID string, upd domain.ClubUpdate) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	if _, err := requireManager(ctx, s.membershipRepo, clubID, actorID); err != nil {
		return nil, err
	}
	if upd.Visibility != nil && *upd.Visibility != domain.ClubVisibilityPublic && *upd.Visibility != domain.ClubVisibilityPrivate {
		return nil, domain.ErrInvalidInput
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		upd.Name = &trimmed
	}

	club, err := s.clubRepo.Update(ctx, clubID, upd, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update club: %w", err)
	}
	return club, nil
}

func (s *clubService) ActivateClub(ctx context.Context, clubID, actorID string) (*domain.Club, error) {
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

	club, err := s.clubRepo.SetActive(ctx, clubID, true, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("activate club: %w", err)
	}
	return club, nil
}

func (s *clubService) ListMyClubs(ctx context.Context, userID string) ([]*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	clubs, err := s.clubRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	if clubs == nil {
		clubs = []*domain.Club{}
	}
	return clubs, nil
}
