package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recordclubs/internal/domain"
)

type inviteService struct {
	inviteRepo     domain.InviteRepository
	membershipRepo domain.MembershipRepository
	clubRepo       domain.ClubRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	appBaseURL     string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewInviteService creates an InviteService with the given repositories and
// email collaborator. appBaseURL is used to build the invite link embedded
// in the invitation email.
func NewInviteService(
	inviteRepo domain.InviteRepository,
	membershipRepo domain.MembershipRepository,
	clubRepo domain.ClubRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	appBaseURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		membershipRepo: membershipRepo,
		clubRepo:       clubRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		appBaseURL:     appBaseURL,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// IssueInvites creates one invite per email and attempts email delivery for
// each. Creation and delivery are deliberately decoupled: a delivery failure
// stamps send_failed_at on the invite for later inspection but never rolls
// back the invite row.
func (s *inviteService) IssueInvites(ctx context.Context, clubID, issuerID string, emails []string) ([]*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	if _, err := requireManager(ctx, s.membershipRepo, clubID, issuerID); err != nil {
		return nil, err
	}

	issuerName := "A club admin"
	if issuer, err := s.userRepo.GetByID(ctx, issuerID); err == nil {
		if name := strings.TrimSpace(issuer.Name); name != "" {
			issuerName = name
		} else if issuer.Handle != "" {
			issuerName = issuer.Handle
		}
	}

	seen := make(map[string]struct{})
	var invites []*domain.Invite
	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" || !emailRegexp.MatchString(email) {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		now := time.Now()
		inv := domain.NewInvite(clubID, email, issuerID, now)
		if err := s.inviteRepo.Create(ctx, inv); err != nil {
			return invites, fmt.Errorf("create invite: %w", err)
		}

		data := &domain.ClubInviteEmailData{
			Email:       email,
			InviterName: issuerName,
			ClubName:    club.Name,
			InviteURL:   s.appBaseURL + "/invites/" + inv.ID,
		}
		sentAt := time.Now()
		if err := s.emailService.SendClubInvite(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "invite email delivery failed", "invite_id", inv.ID, "err", err)
			if err := s.inviteRepo.MarkSendFailed(ctx, inv.ID, sentAt); err != nil {
				s.logger.ErrorContext(ctx, "failed to record send failure", "invite_id", inv.ID, "err", err)
			}
			inv.SendFailedAt = &sentAt
		} else {
			if err := s.inviteRepo.MarkSent(ctx, inv.ID, sentAt); err != nil {
				s.logger.ErrorContext(ctx, "failed to record send", "invite_id", inv.ID, "err", err)
			}
			inv.SentAt = &sentAt
		}
		inv.Status = inv.DeriveStatus()
		invites = append(invites, inv)
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	return invites, nil
}

func (s *inviteService) ListClubInvites(ctx context.Context, clubID, callerID, search string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireManager(ctx, s.membershipRepo, clubID, callerID); err != nil {
		return nil, 0, err
	}
	invs, total, err := s.inviteRepo.ListByClubID(ctx, clubID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invites: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invite{}
	}
	return invs, total, nil
}

func (s *inviteService) ListMyInvites(ctx context.Context, userID string) ([]*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	invs, err := s.inviteRepo.ListByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invite{}
	}
	return invs, nil
}

// AcceptInvite validates the invite against the requesting user and mutates
// membership and invite state atomically. The validation order is fixed;
// each failure mode is distinct.
func (s *inviteService) AcceptInvite(ctx context.Context, inviteID, userID string) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	// A mismatched email reports not-found, not forbidden, so callers cannot
	// confirm the existence of someone else's invite.
	if !strings.EqualFold(user.Email, inv.Email) {
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

	if inv.Expired(time.Now()) {
		return nil, domain.ErrInviteExpired
	}
	switch inv.DeriveStatus() {
	case domain.InviteStatusRevoked, domain.InviteStatusAccepted, domain.InviteStatusDeclined:
		return nil, domain.ErrConflict
	}

	if err := s.inviteRepo.Accept(ctx, inviteID, inv.ClubID, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			// Lost the race against a concurrent accept; the uniqueness
			// constraint on (club, user) is the backstop.
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("accept invite: %w", err)
	}

	club, err := s.clubRepo.GetByID(ctx, inv.ClubID)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	return club, nil
}

// DeclineInvite stamps declined_at/seen_at. Declining an already-declined
// invite is a no-op success; declining an accepted or revoked invite is a
// conflict.
func (s *inviteService) DeclineInvite(ctx context.Context, inviteID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invite: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return domain.ErrNotFound
	}

	switch inv.DeriveStatus() {
	case domain.InviteStatusDeclined:
		return nil
	case domain.InviteStatusAccepted, domain.InviteStatusRevoked:
		return domain.ErrConflict
	}

	if err := s.inviteRepo.Decline(ctx, inviteID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("decline invite: %w", err)
	}
	return nil
}

func (s *inviteService) RevokeInvite(ctx context.Context, inviteID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invite: %w", err)
	}
	if _, err := requireManager(ctx, s.membershipRepo, inv.ClubID, actorID); err != nil {
		return err
	}

	switch inv.DeriveStatus() {
	case domain.InviteStatusAccepted, domain.InviteStatusDeclined, domain.InviteStatusRevoked:
		return domain.ErrConflict
	}

	if err := s.inviteRepo.Revoke(ctx, inviteID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("revoke invite: %w", err)
	}
	return nil
}
