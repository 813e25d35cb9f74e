package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bookreviews/internal/platform/crypto"
	"bookreviews/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users     map[string]user.User
	createErr error
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[u.Username] = *u
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func TestService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(testSecret, repo)

	err := svc.Register(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	stored := repo.users["alice"]
	assert.NotEqual(t, "pw123", stored.Password, "plaintext must never be stored")
	assert.True(t, VerifyPassword(stored.Password, "pw123"))
}

func TestService_Register_StoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("duplicate key")
	svc := NewService(testSecret, repo)

	err := svc.Register(context.Background(), "alice", "pw123")
	assert.Error(t, err)
}

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(testSecret, repo)
	require.NoError(t, svc.Register(context.Background(), "alice", "pw123"))

	token, err := svc.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	claims, err := crypto.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, repo.users["alice"].ID, claims.Sub)
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc := NewService(testSecret, newFakeUserRepo())

	_, err := svc.Login(context.Background(), "nobody", "pw123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(testSecret, repo)
	require.NoError(t, svc.Register(context.Background(), "alice", "pw123"))

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "a wrong password must never look like a missing user")
}
