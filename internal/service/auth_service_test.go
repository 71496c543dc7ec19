package service

import (
	"context"
	"testing"
	"time"

	"jinstore/internal/model"
	"jinstore/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int, role string) error {
	if u, ok := f.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (f *fakeUserRepo) UpdateRefreshToken(_ context.Context, id int, token *string) error {
	if u, ok := f.users[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func testJWTUtil() *utils.JWTUtil {
	return utils.NewJWTUtil("test-secret", 24*time.Hour, 7*24*time.Hour)
}

func registerReq() model.RegisterRequest {
	return model.RegisterRequest{
		Username: "alice",
		Fullname: "Alice Example",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	user, token, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// The stored secret is never the submitted plaintext
	stored := repo.users[user.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password123", stored.PasswordHash))

	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)

	claims, err := testJWTUtil().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, model.RoleCustomer, claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_InitialAdmin(t *testing.T) {
	t.Setenv("INITIAL_ADMIN_EMAIL", "alice@example.com")

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	user, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	registered, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	user, access, refresh, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	// The refresh token is persisted on the record
	stored := repo.users[user.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, refresh, *stored.RefreshToken)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown email fails the same way as a bad password
	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout_ClearsRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTUtil())

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	user, _, _, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, repo.users[user.ID].RefreshToken)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.Nil(t, repo.users[user.ID].RefreshToken)
}
