package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/palmledger/palmledger/internal/auth"
	"github.com/palmledger/palmledger/internal/shared"
	_ "github.com/palmledger/palmledger/testing"
)

type stubRepo struct {
	users map[string]*auth.User
}

func newStubRepo(users ...*auth.User) *stubRepo {
	s := &stubRepo{users: make(map[string]*auth.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, user auth.User) (*auth.User, error) {
	user.ID = int64(len(s.users) + 1)
	s.users[user.Email] = &user
	return &user, nil
}

func (s *stubRepo) List(ctx context.Context) ([]auth.User, error) {
	out := make([]auth.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubRepo) SetActive(ctx context.Context, id int64, active bool) error {
	for _, u := range s.users {
		if u.ID == id {
			u.IsActive = active
			return nil
		}
	}
	return shared.ErrNotFound
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	repo := newStubRepo(&auth.User{
		ID:           1,
		Username:     "somchai",
		Email:        "somchai@palmledger.local",
		PasswordHash: hashOf(t, "password1"),
		Role:         shared.RoleUser,
		IsActive:     true,
	})
	svc := auth.NewService(repo)

	user, err := svc.Authenticate(context.Background(), "  Somchai@PalmLedger.local ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "somchai", user.Username)

	_, err = svc.Authenticate(context.Background(), "somchai@palmledger.local", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@palmledger.local", "password1")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	repo := newStubRepo(&auth.User{
		ID:           2,
		Email:        "off@palmledger.local",
		PasswordHash: hashOf(t, "password1"),
		IsActive:     false,
	})
	svc := auth.NewService(repo)

	_, err := svc.Authenticate(context.Background(), "off@palmledger.local", "password1")
	assert.ErrorIs(t, err, shared.ErrAccountDisabled)
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	repo := newStubRepo()
	svc := auth.NewService(repo)

	user, err := svc.Register(context.Background(), " somsri ", "Somsri@PalmLedger.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "somsri", user.Username)
	assert.Equal(t, "somsri@palmledger.local", user.Email)
	assert.Equal(t, shared.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}
