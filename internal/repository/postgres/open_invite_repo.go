package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recordclubs/internal/domain"
)

type openInviteRepository struct {
	DB *sql.DB
}

func NewOpenInviteRepository(db *sql.DB) domain.OpenInviteRepository {
	return &openInviteRepository{DB: db}
}

const openInviteColumns = `id, club_id, token, created_by, revoked_at, created_at`

func scanOpenInvite(row interface{ Scan(...any) error }) (*domain.OpenInvite, error) {
	inv := &domain.OpenInvite{}
	err := row.Scan(&inv.ID, &inv.ClubID, &inv.Token, &inv.CreatedBy, &inv.RevokedAt, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *openInviteRepository) Create(ctx context.Context, inv *domain.OpenInvite) error {
	query := `
		INSERT INTO open_invites (club_id, token, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.ClubID, inv.Token, inv.CreatedBy, inv.CreatedAt).Scan(&inv.ID)
}

func (r *openInviteRepository) GetByToken(ctx context.Context, token string) (*domain.OpenInvite, error) {
	query := `SELECT ` + openInviteColumns + ` FROM open_invites WHERE token = $1`
	return scanOpenInvite(r.DB.QueryRowContext(ctx, query, token))
}

func (r *openInviteRepository) GetCurrentByClubID(ctx context.Context, clubID string) (*domain.OpenInvite, error) {
	query := `
		SELECT ` + openInviteColumns + `
		FROM open_invites
		WHERE club_id = $1 AND revoked_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanOpenInvite(r.DB.QueryRowContext(ctx, query, clubID))
}

func (r *openInviteRepository) RevokeAllByClubID(ctx context.Context, clubID string, at time.Time) error {
	query := `
		UPDATE open_invites
		SET revoked_at = $2
		WHERE club_id = $1 AND revoked_at IS NULL
	`
	_, err := r.DB.ExecContext(ctx, query, clubID, at)
	return err
}

func (r *openInviteRepository) Redeem(ctx context.Context, clubID, userID string, at time.Time) error {
	return upsertActiveMembership(ctx, r.DB, clubID, userID, at)
}
