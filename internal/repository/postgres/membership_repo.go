package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recordclubs/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

// execer covers *sql.DB and *sql.Tx for statements shared between the
// plain repositories and the transactional invite paths.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// upsertActiveMembership reactivates an inactive, non-blocked membership or
// inserts a fresh member-role row. The uniqueness constraint on
// (club_id, user_id) is the backstop against concurrent duplicate inserts;
// a violation is returned as domain.ErrAlreadyMember, never raw.
func upsertActiveMembership(ctx context.Context, db execer, clubID, userID string, at time.Time) error {
	reactivate := `
		UPDATE memberships
		SET inactive_at = NULL, updated_at = $3
		WHERE club_id = $1 AND user_id = $2 AND inactive_at IS NOT NULL AND blocked_at IS NULL
	`
	res, err := db.ExecContext(ctx, reactivate, clubID, userID, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	insert := `
		INSERT INTO memberships (club_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	if _, err := db.ExecContext(ctx, insert, clubID, userID, domain.RoleMember, at); err != nil {
		if uniqueViolation(err, "") {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (club_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.ClubID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		if uniqueViolation(err, "") {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *membershipRepository) GetByClubAndUser(ctx context.Context, clubID, userID string) (*domain.Membership, error) {
	query := `
		SELECT id, club_id, user_id, role, inactive_at, blocked_at, created_at, updated_at
		FROM memberships
		WHERE club_id = $1 AND user_id = $2
	`
	m := &domain.Membership{}
	err := r.DB.QueryRowContext(ctx, query, clubID, userID).
		Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.InactiveAt, &m.BlockedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListByClubID(ctx context.Context, clubID string) ([]*domain.ClubMember, error) {
	query := `
		SELECT m.club_id, m.user_id, u.handle, u.name, u.email, m.role, m.inactive_at, m.blocked_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.club_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.ClubMember
	for rows.Next() {
		cm := &domain.ClubMember{}
		var inactiveAt, blockedAt *time.Time
		if err := rows.Scan(&cm.ClubID, &cm.UserID, &cm.Handle, &cm.Name, &cm.Email, &cm.Role, &inactiveAt, &blockedAt); err != nil {
			return nil, err
		}
		cm.Status = (&domain.Membership{InactiveAt: inactiveAt, BlockedAt: blockedAt}).Status()
		members = append(members, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if members == nil {
		members = []*domain.ClubMember{}
	}
	return members, nil
}

func (r *membershipRepository) SetInactive(ctx context.Context, clubID, userID string, at time.Time) error {
	query := `
		UPDATE memberships
		SET inactive_at = $3, updated_at = $3
		WHERE club_id = $1 AND user_id = $2 AND inactive_at IS NULL AND blocked_at IS NULL
	`
	return r.execExpectingRow(ctx, query, clubID, userID, at)
}

func (r *membershipRepository) Reactivate(ctx context.Context, clubID, userID string, at time.Time) error {
	query := `
		UPDATE memberships
		SET inactive_at = NULL, updated_at = $3
		WHERE club_id = $1 AND user_id = $2 AND inactive_at IS NOT NULL AND blocked_at IS NULL
	`
	return r.execExpectingRow(ctx, query, clubID, userID, at)
}

func (r *membershipRepository) SetBlocked(ctx context.Context, clubID, userID string, at time.Time) error {
	// Role is forced to member on block; the owner role never reaches this
	// statement (service-level check) but the predicate keeps it safe anyway.
	query := `
		UPDATE memberships
		SET blocked_at = $3, role = 'member', updated_at = $3
		WHERE club_id = $1 AND user_id = $2 AND blocked_at IS NULL AND role <> 'owner'
	`
	return r.execExpectingRow(ctx, query, clubID, userID, at)
}

func (r *membershipRepository) ClearBlocked(ctx context.Context, clubID, userID string, at time.Time) error {
	// Unblocking leaves the membership inactive; the user rejoins explicitly.
	query := `
		UPDATE memberships
		SET blocked_at = NULL, inactive_at = $3, updated_at = $3
		WHERE club_id = $1 AND user_id = $2 AND blocked_at IS NOT NULL
	`
	return r.execExpectingRow(ctx, query, clubID, userID, at)
}

func (r *membershipRepository) UpdateRole(ctx context.Context, clubID, userID string, role domain.MemberRole, at time.Time) error {
	query := `
		UPDATE memberships
		SET role = $3, updated_at = $4
		WHERE club_id = $1 AND user_id = $2 AND blocked_at IS NULL AND role <> 'owner'
	`
	res, err := r.DB.ExecContext(ctx, query, clubID, userID, role, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *membershipRepository) execExpectingRow(ctx context.Context, query, clubID, userID string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, query, clubID, userID, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
