package service

import (
	"CryptoVault/internal/auth"
	"CryptoVault/internal/domain"
	myErrors "CryptoVault/internal/errors"
	"CryptoVault/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users         repository.UserRepo
	authenticator *auth.Authenticator
}

func NewAuthService(userRepo repository.UserRepo, authenticator *auth.Authenticator) *AuthService {
	return &AuthService{users: userRepo, authenticator: authenticator}
}

// Register creates the user and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", myErrors.ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("error getting user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hashing failed: %w", err)
	}

	uid := uuid.New().String()
	user := domain.User{
		ID:           uid,
		Username:     username,
		PasswordHash: string(hash),
	}

	if err = s.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.authenticator.GenerateToken(uid)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", myErrors.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error getting user: %w", err)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", myErrors.ErrInvalidPassword
	}
	return s.authenticator.GenerateToken(user.ID)
}
