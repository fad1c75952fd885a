package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/auth/domain"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) error {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListPendingVendors(_ context.Context, _, _ int) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range f.users {
		if !u.Approved {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.AuthSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.AuthSession{}}
}

func (f *fakeSessionRepo) Save(_ context.Context, session *domain.AuthSession) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, token string) (*domain.AuthSession, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uint) error {
	for token, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

func newAuthServices() (*AuthCommandService, *AuthQueryService, *fakeUserRepo, *fakeSessionRepo) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	cmd := NewAuthCommandService(repo, sessions, nil)
	qry := NewAuthQueryService(repo, sessions)
	return cmd, qry, repo, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	cmd, qry, _, _ := newAuthServices()
	ctx := context.Background()

	id, err := cmd.Register(ctx, RegisterCommand{Email: "jo@example.com", Name: "Jo", Password: "s3cret!"})
	require.NoError(t, err)
	require.NotZero(t, id)

	// 重复注册
	_, err = cmd.Register(ctx, RegisterCommand{Email: "jo@example.com", Name: "Jo", Password: "other"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	token, expiresAt, err := cmd.Login(ctx, LoginCommand{Email: "jo@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	session, err := qry.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, session.UserID)
	assert.Equal(t, domain.RoleCustomer, session.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	cmd, _, _, _ := newAuthServices()
	ctx := context.Background()

	_, err := cmd.Register(ctx, RegisterCommand{Email: "jo@example.com", Name: "Jo", Password: "s3cret!"})
	require.NoError(t, err)

	_, _, err = cmd.Login(ctx, LoginCommand{Email: "jo@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = cmd.Login(ctx, LoginCommand{Email: "nobody@example.com", Password: "s3cret!"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	cmd, qry, _, _ := newAuthServices()
	ctx := context.Background()

	_, err := cmd.Register(ctx, RegisterCommand{Email: "jo@example.com", Name: "Jo", Password: "s3cret!"})
	require.NoError(t, err)
	token, _, err := cmd.Login(ctx, LoginCommand{Email: "jo@example.com", Password: "s3cret!"})
	require.NoError(t, err)

	require.NoError(t, cmd.Logout(ctx, token))
	_, err = qry.ValidateToken(ctx, token)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestApproveVendor(t *testing.T) {
	cmd, qry, repo, _ := newAuthServices()
	ctx := context.Background()

	vendorID, err := cmd.Register(ctx, RegisterCommand{
		Email: "shop@example.com", Name: "Shop", Password: "s3cret!", Role: domain.RoleVendor,
	})
	require.NoError(t, err)

	pending, total, err := qry.ListPendingVendors(ctx, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Approved)

	require.NoError(t, cmd.ApproveVendor(ctx, vendorID, 99))

	user, err := repo.GetByID(ctx, vendorID)
	require.NoError(t, err)
	assert.True(t, user.Approved)
	assert.True(t, user.CanSell())

	// 重复审批
	require.ErrorIs(t, cmd.ApproveVendor(ctx, vendorID, 99), domain.ErrNotPendingApproval)
	require.ErrorIs(t, cmd.ApproveVendor(ctx, 12345, 99), domain.ErrUserNotFound)
}

func TestApproveCustomerRejected(t *testing.T) {
	cmd, _, _, _ := newAuthServices()
	ctx := context.Background()

	id, err := cmd.Register(ctx, RegisterCommand{Email: "jo@example.com", Name: "Jo", Password: "s3cret!"})
	require.NoError(t, err)

	require.ErrorIs(t, cmd.ApproveVendor(ctx, id, 99), domain.ErrNotPendingApproval)
}
