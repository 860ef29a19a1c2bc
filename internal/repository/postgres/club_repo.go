package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recordclubs/internal/domain"
)

type clubRepository struct {
	DB *sql.DB
}

func NewClubRepository(db *sql.DB) domain.ClubRepository {
	return &clubRepository{DB: db}
}

const clubColumns = `id, name, short_description, long_description, visibility, active, owner_id, created_by, created_at, updated_at`

func scanClub(row interface{ Scan(...any) error }) (*domain.Club, error) {
	c := &domain.Club{}
	err := row.Scan(&c.ID, &c.Name, &c.ShortDescription, &c.LongDescription, &c.Visibility, &c.Active, &c.OwnerID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateWithOwner inserts the club row and the owner's membership row in one
// transaction so a club can never exist without its owner membership.
func (r *clubRepository) CreateWithOwner(ctx context.Context, club *domain.Club) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertClub := `
		INSERT INTO clubs (name, short_description, long_description, visibility, active, owner_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertClub,
		club.Name, club.ShortDescription, club.LongDescription, club.Visibility,
		club.Active, club.OwnerID, club.CreatedBy, club.CreatedAt, club.UpdatedAt,
	).Scan(&club.ID)
	if err != nil {
		return fmt.Errorf("insert club: %w", err)
	}

	insertMembership := `
		INSERT INTO memberships (club_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insertMembership, club.ID, club.OwnerID, domain.RoleOwner, club.CreatedAt, club.CreatedAt); err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}

	return tx.Commit()
}

func (r *clubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	return scanClub(r.DB.QueryRowContext(ctx, query, id))
}

func (r *clubRepository) Update(ctx context.Context, id string, upd domain.ClubUpdate, updatedAt time.Time) (*domain.Club, error) {
	query := `
		UPDATE clubs
		SET name = COALESCE($1, name),
		    short_description = COALESCE($2, short_description),
		    long_description = COALESCE($3, long_description),
		    visibility = COALESCE($4, visibility),
		    updated_at = $5
		WHERE id = $6
		RETURNING ` + clubColumns
	var vis *string
	if upd.Visibility != nil {
		s := string(*upd.Visibility)
		vis = &s
	}
	return scanClub(r.DB.QueryRowContext(ctx, query, upd.Name, upd.ShortDescription, upd.LongDescription, vis, updatedAt, id))
}

func (r *clubRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) (*domain.Club, error) {
	query := `
		UPDATE clubs
		SET active = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + clubColumns
	return scanClub(r.DB.QueryRowContext(ctx, query, active, updatedAt, id))
}

func (r *clubRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Club, error) {
	query := `
		SELECT c.id, c.name, c.short_description, c.long_description, c.visibility, c.active, c.owner_id, c.created_by, c.created_at, c.updated_at
		FROM clubs c
		JOIN memberships m ON m.club_id = c.id
		WHERE m.user_id = $1 AND m.inactive_at IS NULL AND m.blocked_at IS NULL
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []*domain.Club{}
	}
	return clubs, nil
}
