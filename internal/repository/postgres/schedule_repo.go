package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recordclubs/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

const albumColumns = `id, club_id, title, artist, cover_url, scheduled_for, added_by, created_at, updated_at`

func scanAlbum(row interface{ Scan(...any) error }) (*domain.ScheduledAlbum, error) {
	a := &domain.ScheduledAlbum{}
	err := row.Scan(&a.ID, &a.ClubID, &a.Title, &a.Artist, &a.CoverURL, &a.ScheduledFor, &a.AddedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *scheduleRepository) Create(ctx context.Context, album *domain.ScheduledAlbum) error {
	query := `
		INSERT INTO scheduled_albums (club_id, title, artist, cover_url, scheduled_for, added_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		album.ClubID, album.Title, album.Artist, album.CoverURL,
		album.ScheduledFor, album.AddedBy, album.CreatedAt, album.UpdatedAt,
	).Scan(&album.ID)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledAlbum, error) {
	query := `SELECT ` + albumColumns + ` FROM scheduled_albums WHERE id = $1`
	return scanAlbum(r.DB.QueryRowContext(ctx, query, id))
}

func (r *scheduleRepository) ListByClubID(ctx context.Context, clubID string, from *time.Time) ([]*domain.ScheduledAlbum, error) {
	query := `SELECT ` + albumColumns + ` FROM scheduled_albums WHERE club_id = $1`
	args := []any{clubID}
	if from != nil {
		query += ` AND scheduled_for >= $2`
		args = append(args, *from)
	}
	query += ` ORDER BY scheduled_for ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []*domain.ScheduledAlbum
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if albums == nil {
		albums = []*domain.ScheduledAlbum{}
	}
	return albums, nil
}

func (r *scheduleRepository) UpdateScheduledFor(ctx context.Context, id string, scheduledFor, updatedAt time.Time) (*domain.ScheduledAlbum, error) {
	query := `
		UPDATE scheduled_albums
		SET scheduled_for = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + albumColumns
	return scanAlbum(r.DB.QueryRowContext(ctx, query, id, scheduledFor, updatedAt))
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM scheduled_albums WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
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
