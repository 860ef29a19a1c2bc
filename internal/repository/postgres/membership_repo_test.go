package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"recordclubs/internal/domain"
)

func TestMembershipRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success returns generated id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO memberships \(club_id, user_id, role, created_at, updated_at\)`).
					WithArgs("club-1", "user-1", domain.RoleMember, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))
			},
		},
		{
			name: "duplicate returns ErrAlreadyMember",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO memberships \(club_id, user_id, role, created_at, updated_at\)`).
					WithArgs("club-1", "user-1", domain.RoleMember, now, now).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMembershipRepository(db)
			m := domain.NewMembership("club-1", "user-1", domain.RoleMember, now)
			err = repo.Create(ctx, m)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "m-1", m.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMembershipRepository_GetByClubAndUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	blockedAt := now.Add(time.Hour)

	tests := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		wantStatus domain.MemberStatus
		wantErr    error
	}{
		{
			name: "active membership",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, club_id, user_id, role, inactive_at, blocked_at`).
					WithArgs("club-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "club_id", "user_id", "role", "inactive_at", "blocked_at", "created_at", "updated_at",
					}).AddRow("m-1", "club-1", "user-1", "member", nil, nil, now, now))
			},
			wantStatus: domain.StatusActive,
		},
		{
			name: "blocked membership",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, club_id, user_id, role, inactive_at, blocked_at`).
					WithArgs("club-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "club_id", "user_id", "role", "inactive_at", "blocked_at", "created_at", "updated_at",
					}).AddRow("m-1", "club-1", "user-1", "member", nil, blockedAt, now, now))
			},
			wantStatus: domain.StatusBlocked,
		},
		{
			name: "no membership returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, club_id, user_id, role, inactive_at, blocked_at`).
					WithArgs("club-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMembershipRepository(db)
			m, err := repo.GetByClubAndUser(ctx, "club-1", "user-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, m.Status())
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMembershipRepository_ListByClubID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT m.club_id, m.user_id, u.handle, u.name, u.email`).
		WithArgs("club-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"club_id", "user_id", "handle", "name", "email", "role", "inactive_at", "blocked_at",
		}).
			AddRow("club-1", "user-a", "alice", "Alice", "alice@example.com", "owner", nil, nil).
			AddRow("club-1", "user-b", "bob", "Bob", "bob@example.com", "member", now, nil))

	repo := NewMembershipRepository(db)
	members, err := repo.ListByClubID(ctx, "club-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, domain.StatusActive, members[0].Status)
	require.Equal(t, domain.StatusInactive, members[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_SetInactive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "active member goes inactive",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE memberships`).
					WithArgs("club-1", "user-1", now).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already inactive or blocked returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE memberships`).
					WithArgs("club-1", "user-1", now).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMembershipRepository(db)
			err = repo.SetInactive(ctx, "club-1", "user-1", now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMembershipRepository_SetBlocked(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// The owner row never matches the predicate, so blocking the owner
	// surfaces as ErrNotFound even if a service-level check were bypassed.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE memberships`).
		WithArgs("club-1", "owner-1", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMembershipRepository(db)
	err = repo.SetBlocked(ctx, "club-1", "owner-1", now)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
