package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recordclubs/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

const inviteColumns = `id, club_id, email, created_by, expires_at, sent_at, send_failed_at, seen_at, revoked_at, accepted_at, declined_at, created_at`

func scanInvite(row interface{ Scan(...any) error }) (*domain.Invite, error) {
	inv := &domain.Invite{}
	err := row.Scan(
		&inv.ID, &inv.ClubID, &inv.Email, &inv.CreatedBy, &inv.ExpiresAt,
		&inv.SentAt, &inv.SendFailedAt, &inv.SeenAt, &inv.RevokedAt,
		&inv.AcceptedAt, &inv.DeclinedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.Status = inv.DeriveStatus()
	return inv, nil
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (club_id, email, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.ClubID, inv.Email, inv.CreatedBy, inv.ExpiresAt, inv.CreatedAt).Scan(&inv.ID)
	if err != nil {
		return err
	}
	inv.Status = inv.DeriveStatus()
	return nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE id = $1`
	return scanInvite(r.DB.QueryRowContext(ctx, query, id))
}

func (r *inviteRepository) ListByClubID(ctx context.Context, clubID, search string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	where := `WHERE club_id = $1`
	args := []any{clubID}
	if search != "" {
		where += ` AND email ILIKE $2`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM invites ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM invites %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		inviteColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invs []*domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if invs == nil {
		invs = []*domain.Invite{}
	}
	return invs, total, nil
}

func (r *inviteRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE email = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invite{}
	}
	return invs, nil
}

func (r *inviteRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE invites SET sent_at = $2 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, at)
	return err
}

func (r *inviteRepository) MarkSendFailed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE invites SET send_failed_at = $2 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, at)
	return err
}

// Accept runs the membership upsert and the invite stamp in one
// transaction; a failure in either aborts both.
func (r *inviteRepository) Accept(ctx context.Context, inviteID, clubID, userID string, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertActiveMembership(ctx, tx, clubID, userID, at); err != nil {
		return err
	}

	stamp := `
		UPDATE invites
		SET accepted_at = $2, seen_at = COALESCE(seen_at, $2)
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, stamp, inviteID, at)
	if err != nil {
		return fmt.Errorf("stamp invite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *inviteRepository) Decline(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE invites
		SET declined_at = $2, seen_at = COALESCE(seen_at, $2)
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
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

func (r *inviteRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE invites SET revoked_at = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, at)
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
