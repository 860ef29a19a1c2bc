package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"recordclubs/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMembershipRepo is an in-memory MembershipRepository for tests. Rows are
// keyed by clubID/userID like the uniqueness constraint.
type fakeMembershipRepo struct {
	byKey  map[string]*domain.Membership
	nextID int
	err    error // if set, Create returns this error
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		byKey:  make(map[string]*domain.Membership),
		nextID: 1,
	}
}

func membershipKey(clubID, userID string) string {
	return clubID + "/" + userID
}

func (f *fakeMembershipRepo) add(clubID, userID string, role domain.MemberRole, inactiveAt, blockedAt *time.Time) *domain.Membership {
	m := &domain.Membership{
		ID:         fmt.Sprintf("m-%d", f.nextID),
		ClubID:     clubID,
		UserID:     userID,
		Role:       role,
		InactiveAt: inactiveAt,
		BlockedAt:  blockedAt,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.nextID++
	f.byKey[membershipKey(clubID, userID)] = m
	return m
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *domain.Membership) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byKey[membershipKey(m.ClubID, m.UserID)]; ok {
		return domain.ErrAlreadyMember
	}
	m.ID = fmt.Sprintf("m-%d", f.nextID)
	f.nextID++
	f.byKey[membershipKey(m.ClubID, m.UserID)] = m
	return nil
}

func (f *fakeMembershipRepo) GetByClubAndUser(ctx context.Context, clubID, userID string) (*domain.Membership, error) {
	if m, ok := f.byKey[membershipKey(clubID, userID)]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMembershipRepo) ListByClubID(ctx context.Context, clubID string) ([]*domain.ClubMember, error) {
	var out []*domain.ClubMember
	for _, m := range f.byKey {
		if m.ClubID == clubID {
			out = append(out, &domain.ClubMember{
				ClubID: m.ClubID,
				UserID: m.UserID,
				Role:   m.Role,
				Status: m.Status(),
			})
		}
	}
	if out == nil {
		out = []*domain.ClubMember{}
	}
	return out, nil
}

func (f *fakeMembershipRepo) SetInactive(ctx context.Context, clubID, userID string, at time.Time) error {
	m, ok := f.byKey[membershipKey(clubID, userID)]
	if !ok || m.Status() != domain.StatusActive {
		return domain.ErrNotFound
	}
	m.InactiveAt = &at
	m.UpdatedAt = at
	return nil
}

func (f *fakeMembershipRepo) Reactivate(ctx context.Context, clubID, userID string, at time.Time) error {
	m, ok := f.byKey[membershipKey(clubID, userID)]
	if !ok || m.Status() != domain.StatusInactive {
		return domain.ErrNotFound
	}
	m.InactiveAt = nil
	m.UpdatedAt = at
	return nil
}

func (f *fakeMembershipRepo) SetBlocked(ctx context.Context, clubID, userID string, at time.Time) error {
	m, ok := f.byKey[membershipKey(clubID, userID)]
	if !ok {
		return domain.ErrNotFound
	}
	m.BlockedAt = &at
	m.Role = domain.RoleMember
	m.UpdatedAt = at
	return nil
}

func (f *fakeMembershipRepo) ClearBlocked(ctx context.Context, clubID, userID string, at time.Time) error {
	m, ok := f.byKey[membershipKey(clubID, userID)]
	if !ok || m.Status() != domain.StatusBlocked {
		return domain.ErrNotFound
	}
	m.BlockedAt = nil
	m.InactiveAt = &at
	m.UpdatedAt = at
	return nil
}

func (f *fakeMembershipRepo) UpdateRole(ctx context.Context, clubID, userID string, role domain.MemberRole, at time.Time) error {
	m, ok := f.byKey[membershipKey(clubID, userID)]
	if !ok || m.Status() != domain.StatusActive {
		return domain.ErrNotFound
	}
	m.Role = role
	m.UpdatedAt = at
	return nil
}

// upsertActive mirrors the membership upsert the real repos run inside the
// accept/redeem transactions: reactivate an inactive row or insert a fresh one.
func (f *fakeMembershipRepo) upsertActive(clubID, userID string, at time.Time) error {
	if m, ok := f.byKey[membershipKey(clubID, userID)]; ok {
		if m.Status() == domain.StatusInactive {
			m.InactiveAt = nil
			m.UpdatedAt = at
			return nil
		}
		return domain.ErrAlreadyMember
	}
	return f.Create(context.Background(), domain.NewMembership(clubID, userID, domain.RoleMember, at))
}

// fakeClubRepo is an in-memory ClubRepository for tests.
type fakeClubRepo struct {
	byID   map[string]*domain.Club
	nextID int
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{
		byID:   make(map[string]*domain.Club),
		nextID: 1,
	}
}

func (f *fakeClubRepo) addClub(name string) *domain.Club {
	c := &domain.Club{
		ID:         fmt.Sprintf("club-%d", f.nextID),
		Name:       name,
		Visibility: domain.ClubVisibilityPrivate,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.nextID++
	f.byID[c.ID] = c
	return c
}

func (f *fakeClubRepo) CreateWithOwner(ctx context.Context, club *domain.Club) error {
	club.ID = fmt.Sprintf("club-%d", f.nextID)
	f.nextID++
	f.byID[club.ID] = club
	return nil
}

func (f *fakeClubRepo) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClubRepo) Update(ctx context.Context, id string, upd domain.ClubUpdate, updatedAt time.Time) (*domain.Club, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.ShortDescription != nil {
		c.ShortDescription = *upd.ShortDescription
	}
	if upd.LongDescription != nil {
		c.LongDescription = *upd.LongDescription
	}
	if upd.Visibility != nil {
		c.Visibility = *upd.Visibility
	}
	c.UpdatedAt = updatedAt
	return c, nil
}

func (f *fakeClubRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) (*domain.Club, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Active = active
	c.UpdatedAt = updatedAt
	return c, nil
}

func (f *fakeClubRepo) ListByMember(ctx context.Context, userID string) ([]*domain.Club, error) {
	return []*domain.Club{}, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) addUser(id, email, name string) *domain.User {
	u := &domain.User{ID: id, Email: strings.ToLower(email), Name: name}
	f.byID[id] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Handle == handle {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.byID[user.ID] = user
	return nil
}

// fakeInviteRepo is an in-memory InviteRepository for tests. Accept performs
// the same membership upsert the real repo runs in its transaction, against
// the attached fakeMembershipRepo.
type fakeInviteRepo struct {
	byID        map[string]*domain.Invite
	nextID      int
	memberships *fakeMembershipRepo
	createErr   error
	acceptErr   error // if set, Accept returns this error
}

func newFakeInviteRepo(memberships *fakeMembershipRepo) *fakeInviteRepo {
	return &fakeInviteRepo{
		byID:        make(map[string]*domain.Invite),
		nextID:      1,
		memberships: memberships,
	}
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	if f.createErr != nil {
		return f.createErr
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	if inv, ok := f.byID[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) ListByClubID(ctx context.Context, clubID, search string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	var out []*domain.Invite
	for _, inv := range f.byID {
		if inv.ClubID != clubID {
			continue
		}
		if search != "" && !strings.Contains(inv.Email, strings.ToLower(search)) {
			continue
		}
		out = append(out, inv)
	}
	if out == nil {
		out = []*domain.Invite{}
	}
	return out, len(out), nil
}

func (f *fakeInviteRepo) ListByEmail(ctx context.Context, email string) ([]*domain.Invite, error) {
	email = strings.ToLower(email)
	var out []*domain.Invite
	for _, inv := range f.byID {
		if strings.ToLower(inv.Email) == email {
			out = append(out, inv)
		}
	}
	if out == nil {
		out = []*domain.Invite{}
	}
	return out, nil
}

func (f *fakeInviteRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.SentAt = &at
	return nil
}

func (f *fakeInviteRepo) MarkSendFailed(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.SendFailedAt = &at
	return nil
}

func (f *fakeInviteRepo) Accept(ctx context.Context, inviteID, clubID, userID string, at time.Time) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	inv, ok := f.byID[inviteID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := f.memberships.upsertActive(clubID, userID, at); err != nil {
		return err
	}
	inv.AcceptedAt = &at
	if inv.SeenAt == nil {
		inv.SeenAt = &at
	}
	return nil
}

func (f *fakeInviteRepo) Decline(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.DeclinedAt = &at
	if inv.SeenAt == nil {
		inv.SeenAt = &at
	}
	return nil
}

func (f *fakeInviteRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.RevokedAt = &at
	return nil
}

// fakeOpenInviteRepo is an in-memory OpenInviteRepository for tests.
type fakeOpenInviteRepo struct {
	invites     []*domain.OpenInvite
	nextID      int
	memberships *fakeMembershipRepo
	redeemErr   error // if set, Redeem returns this error
}

func newFakeOpenInviteRepo(memberships *fakeMembershipRepo) *fakeOpenInviteRepo {
	return &fakeOpenInviteRepo{
		nextID:      1,
		memberships: memberships,
	}
}

func (f *fakeOpenInviteRepo) Create(ctx context.Context, inv *domain.OpenInvite) error {
	inv.ID = fmt.Sprintf("oi-%d", f.nextID)
	f.nextID++
	f.invites = append(f.invites, inv)
	return nil
}

func (f *fakeOpenInviteRepo) GetByToken(ctx context.Context, token string) (*domain.OpenInvite, error) {
	for _, inv := range f.invites {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOpenInviteRepo) GetCurrentByClubID(ctx context.Context, clubID string) (*domain.OpenInvite, error) {
	for i := len(f.invites) - 1; i >= 0; i-- {
		inv := f.invites[i]
		if inv.ClubID == clubID && !inv.Revoked() {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOpenInviteRepo) RevokeAllByClubID(ctx context.Context, clubID string, at time.Time) error {
	for _, inv := range f.invites {
		if inv.ClubID == clubID && !inv.Revoked() {
			inv.RevokedAt = &at
		}
	}
	return nil
}

func (f *fakeOpenInviteRepo) Redeem(ctx context.Context, clubID, userID string, at time.Time) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	return f.memberships.upsertActive(clubID, userID, at)
}

// fakeEmailService is a test double for EmailService. Tracks SendClubInvite
// calls; SendLoginCode no-ops.
type fakeEmailService struct {
	sendClubInviteErr error // if set, SendClubInvite returns this
	sentInvites       []*domain.ClubInviteEmailData
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{sentInvites: []*domain.ClubInviteEmailData{}}
}

func (f *fakeEmailService) SendClubInvite(ctx context.Context, data *domain.ClubInviteEmailData) error {
	if f.sendClubInviteErr != nil {
		return f.sendClubInviteErr
	}
	f.sentInvites = append(f.sentInvites, data)
	return nil
}

func (f *fakeEmailService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	return nil
}

type inviteFixture struct {
	invites     *fakeInviteRepo
	memberships *fakeMembershipRepo
	clubs       *fakeClubRepo
	users       *fakeUserRepo
	email       *fakeEmailService
	club        *domain.Club
	svc         domain.InviteService
}

// newInviteFixture wires an invite service around one club owned by "owner-1"
// with an active admin "admin-1" and an active plain member "member-1".
func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()
	memberships := newFakeMembershipRepo()
	clubs := newFakeClubRepo()
	users := newFakeUserRepo()
	email := newFakeEmailService()
	invites := newFakeInviteRepo(memberships)

	club := clubs.addClub("Vinyl Sundays")
	memberships.add(club.ID, "owner-1", domain.RoleOwner, nil, nil)
	memberships.add(club.ID, "admin-1", domain.RoleAdmin, nil, nil)
	memberships.add(club.ID, "member-1", domain.RoleMember, nil, nil)
	users.addUser("owner-1", "owner@example.com", "Olive Owner")
	users.addUser("admin-1", "admin@example.com", "Avery Admin")
	users.addUser("member-1", "member@example.com", "Milo Member")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewInviteService(invites, memberships, clubs, users, email, "https://clubs.example.com", logger, 5*time.Second)
	return &inviteFixture{
		invites:     invites,
		memberships: memberships,
		clubs:       clubs,
		users:       users,
		email:       email,
		club:        club,
		svc:         svc,
	}
}

func TestInviteService_IssueInvites(t *testing.T) {
	ctx := context.Background()

	t.Run("success dedupes and skips invalid addresses", func(t *testing.T) {
		f := newInviteFixture(t)
		invs, err := f.svc.IssueInvites(ctx, f.club.ID, "admin-1", []string{
			"Ana@example.com",
			"ana@example.com",
			"not-an-email",
			"",
			"ben@example.com",
		})
		require.NoError(t, err)
		require.Len(t, invs, 2)
		assert.Equal(t, "ana@example.com", invs[0].Email)
		assert.Equal(t, "ben@example.com", invs[1].Email)
		for _, inv := range invs {
			assert.NotEmpty(t, inv.ID)
			require.NotNil(t, inv.SentAt)
			assert.Equal(t, domain.InviteStatusSent, inv.Status)
			assert.False(t, inv.ExpiresAt.IsZero())
		}
		require.Len(t, f.email.sentInvites, 2)
		assert.Equal(t, "Vinyl Sundays", f.email.sentInvites[0].ClubName)
		assert.Equal(t, "Avery Admin", f.email.sentInvites[0].InviterName)
		assert.Equal(t, "https://clubs.example.com/invites/"+invs[0].ID, f.email.sentInvites[0].InviteURL)
	})

	t.Run("delivery failure keeps the invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.email.sendClubInviteErr = errors.New("ses unavailable")
		invs, err := f.svc.IssueInvites(ctx, f.club.ID, "owner-1", []string{"ana@example.com"})
		require.NoError(t, err)
		require.Len(t, invs, 1)
		require.NotNil(t, invs[0].SendFailedAt)
		assert.Nil(t, invs[0].SentAt)
		assert.Equal(t, domain.InviteStatusCreated, invs[0].Status)
		stored, errGet := f.invites.GetByID(ctx, invs[0].ID)
		require.NoError(t, errGet)
		require.NotNil(t, stored.SendFailedAt)
	})

	t.Run("plain member denied", func(t *testing.T) {
		f := newInviteFixture(t)
		_, err := f.svc.IssueInvites(ctx, f.club.ID, "member-1", []string{"ana@example.com"})
		require.True(t, errors.Is(err, domain.ErrPermissionDenied))
	})

	t.Run("non-member denied", func(t *testing.T) {
		f := newInviteFixture(t)
		_, err := f.svc.IssueInvites(ctx, f.club.ID, "stranger-1", []string{"ana@example.com"})
		require.True(t, errors.Is(err, domain.ErrPermissionDenied))
	})

	t.Run("blocked issuer", func(t *testing.T) {
		f := newInviteFixture(t)
		now := time.Now()
		f.memberships.add(f.club.ID, "blocked-1", domain.RoleMember, nil, &now)
		_, err := f.svc.IssueInvites(ctx, f.club.ID, "blocked-1", []string{"ana@example.com"})
		require.True(t, errors.Is(err, domain.ErrBlocked))
	})

	t.Run("club not found", func(t *testing.T) {
		f := newInviteFixture(t)
		_, err := f.svc.IssueInvites(ctx, "club-missing", "owner-1", []string{"ana@example.com"})
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("no valid emails yields empty slice", func(t *testing.T) {
		f := newInviteFixture(t)
		invs, err := f.svc.IssueInvites(ctx, f.club.ID, "owner-1", []string{"nope", ""})
		require.NoError(t, err)
		require.NotNil(t, invs)
		require.Len(t, invs, 0)
		require.Len(t, f.email.sentInvites, 0)
	})
}

// issueTo creates one invite for the given email through the service, so the
// invite carries realistic timestamps.
func (f *inviteFixture) issueTo(t *testing.T, email string) *domain.Invite {
	t.Helper()
	invs, err := f.svc.IssueInvites(context.Background(), f.club.ID, "owner-1", []string{email})
	require.NoError(t, err)
	require.Len(t, invs, 1)
	return invs[0]
}

func TestInviteService_AcceptInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("success joins the club", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")

		club, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
		require.NotNil(t, club)
		assert.Equal(t, f.club.ID, club.ID)

		m, errGet := f.memberships.GetByClubAndUser(ctx, f.club.ID, "ana-1")
		require.NoError(t, errGet)
		assert.Equal(t, domain.StatusActive, m.Status())
		assert.Equal(t, domain.RoleMember, m.Role)

		stored, _ := f.invites.GetByID(ctx, inv.ID)
		require.NotNil(t, stored.AcceptedAt)
		require.NotNil(t, stored.SeenAt)
	})

	t.Run("former member is reactivated", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		left := time.Now().Add(-time.Hour)
		f.memberships.add(f.club.ID, "ana-1", domain.RoleMember, &left, nil)
		inv := f.issueTo(t, "ana@example.com")

		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
		m, _ := f.memberships.GetByClubAndUser(ctx, f.club.ID, "ana-1")
		assert.Equal(t, domain.StatusActive, m.Status())
	})

	t.Run("invite not found", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		_, err := f.svc.AcceptInvite(ctx, "inv-missing", "ana-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("email mismatch reads as not found", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("other-1", "other@example.com", "Other")
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "other-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.byID["ana-1"] = &domain.User{ID: "ana-1", Email: "Ana@Example.com"}
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
	})

	t.Run("active member", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		f.memberships.add(f.club.ID, "ana-1", domain.RoleMember, nil, nil)
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrAlreadyMember))
	})

	t.Run("blocked user", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		now := time.Now()
		f.memberships.add(f.club.ID, "ana-1", domain.RoleMember, nil, &now)
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrBlocked))
	})

	t.Run("blocked wins over expired", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		now := time.Now()
		f.memberships.add(f.club.ID, "ana-1", domain.RoleMember, nil, &now)
		inv := f.issueTo(t, "ana@example.com")
		inv.ExpiresAt = now.Add(-time.Hour)
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrBlocked))
	})

	t.Run("expired invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		inv.ExpiresAt = time.Now().Add(-time.Hour)
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrInviteExpired))
	})

	t.Run("revoked invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.invites.Revoke(ctx, inv.ID, time.Now()))
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("declined invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.invites.Decline(ctx, inv.ID, time.Now()))
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("already accepted invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
		_, err = f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrAlreadyMember))
	})

	t.Run("lost race surfaces already member", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		f.invites.acceptErr = domain.ErrAlreadyMember
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrAlreadyMember))
	})
}

func TestInviteService_DeclineInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("success stamps declined", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.svc.DeclineInvite(ctx, inv.ID, "ana-1"))
		stored, _ := f.invites.GetByID(ctx, inv.ID)
		require.NotNil(t, stored.DeclinedAt)
		assert.Equal(t, domain.InviteStatusDeclined, stored.DeriveStatus())
	})

	t.Run("repeat decline is a no-op", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.svc.DeclineInvite(ctx, inv.ID, "ana-1"))
		first, _ := f.invites.GetByID(ctx, inv.ID)
		declinedAt := *first.DeclinedAt
		require.NoError(t, f.svc.DeclineInvite(ctx, inv.ID, "ana-1"))
		second, _ := f.invites.GetByID(ctx, inv.ID)
		assert.True(t, second.DeclinedAt.Equal(declinedAt), "repeat decline must not restamp")
	})

	t.Run("accepted invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
		err = f.svc.DeclineInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("revoked invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.invites.Revoke(ctx, inv.ID, time.Now()))
		err := f.svc.DeclineInvite(ctx, inv.ID, "ana-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("email mismatch reads as not found", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("other-1", "other@example.com", "Other")
		inv := f.issueTo(t, "ana@example.com")
		err := f.svc.DeclineInvite(ctx, inv.ID, "other-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("invite not found", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		err := f.svc.DeclineInvite(ctx, "inv-missing", "ana-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestInviteService_RevokeInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("admin revokes a pending invite", func(t *testing.T) {
		f := newInviteFixture(t)
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.svc.RevokeInvite(ctx, inv.ID, "admin-1"))
		stored, _ := f.invites.GetByID(ctx, inv.ID)
		require.NotNil(t, stored.RevokedAt)
	})

	t.Run("plain member denied", func(t *testing.T) {
		f := newInviteFixture(t)
		inv := f.issueTo(t, "ana@example.com")
		err := f.svc.RevokeInvite(ctx, inv.ID, "member-1")
		require.True(t, errors.Is(err, domain.ErrPermissionDenied))
	})

	t.Run("accepted invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		inv := f.issueTo(t, "ana@example.com")
		_, err := f.svc.AcceptInvite(ctx, inv.ID, "ana-1")
		require.NoError(t, err)
		err = f.svc.RevokeInvite(ctx, inv.ID, "owner-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("repeat revoke", func(t *testing.T) {
		f := newInviteFixture(t)
		inv := f.issueTo(t, "ana@example.com")
		require.NoError(t, f.svc.RevokeInvite(ctx, inv.ID, "owner-1"))
		err := f.svc.RevokeInvite(ctx, inv.ID, "owner-1")
		require.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("invite not found", func(t *testing.T) {
		f := newInviteFixture(t)
		err := f.svc.RevokeInvite(ctx, "inv-missing", "owner-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestInviteService_ListMyInvites(t *testing.T) {
	ctx := context.Background()

	t.Run("returns invites for the user's email only", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		f.issueTo(t, "ana@example.com")
		f.issueTo(t, "ben@example.com")
		invs, err := f.svc.ListMyInvites(ctx, "ana-1")
		require.NoError(t, err)
		require.Len(t, invs, 1)
		assert.Equal(t, "ana@example.com", invs[0].Email)
	})

	t.Run("empty slice when nothing pending", func(t *testing.T) {
		f := newInviteFixture(t)
		f.users.addUser("ana-1", "ana@example.com", "Ana")
		invs, err := f.svc.ListMyInvites(ctx, "ana-1")
		require.NoError(t, err)
		require.NotNil(t, invs)
		require.Len(t, invs, 0)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newInviteFixture(t)
		_, err := f.svc.ListMyInvites(ctx, "ghost-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestInviteService_ListClubInvites(t *testing.T) {
	ctx := context.Background()

	t.Run("manager lists invites", func(t *testing.T) {
		f := newInviteFixture(t)
		f.issueTo(t, "ana@example.com")
		f.issueTo(t, "ben@example.com")
		invs, total, err := f.svc.ListClubInvites(ctx, f.club.ID, "admin-1", "", domain.PaginationParams{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, invs, 2)
	})

	t.Run("plain member denied", func(t *testing.T) {
		f := newInviteFixture(t)
		_, _, err := f.svc.ListClubInvites(ctx, f.club.ID, "member-1", "", domain.PaginationParams{Page: 1, PageSize: 20})
		require.True(t, errors.Is(err, domain.ErrPermissionDenied))
	})
}
