package auth

import (
	"context"
	"errors"
	"time"

	"bookreviews/internal/platform/crypto"
	"bookreviews/internal/user"
)

// TokenTTL is the fixed validity window of issued tokens.
const TokenTTL = time.Hour

var (
	// ErrUserNotFound is returned by Login when the username is unknown.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned by Login when the password does not
	// match the stored hash. Distinct from ErrUserNotFound so that a correct
	// username with a wrong password is never reported as missing.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	secret string
	users  user.Repository
}

func NewService(secret string, users user.Repository) *Service {
	return &Service{secret: secret, users: users}
}

// Register stores a new user with a hashed password. Uniqueness is left to
// the store's constraint; a duplicate surfaces as a store error.
func (s *Service) Register(ctx context.Context, username, password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(ctx, &user.User{Username: username, Password: hashed})
}

// Login checks the credentials and issues a token valid for TokenTTL.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !VerifyPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	return crypto.GenerateToken(s.secret, u.ID, TokenTTL)
}
