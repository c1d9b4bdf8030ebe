package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "capture-backend/internal/shared/auth"
)

// RecordsPurger removes all records owned by a user. Satisfied by the
// records repository so account deletion can cascade explicitly even
// when the backing store has no foreign keys.
type RecordsPurger interface {
	DeleteByUser(ctx context.Context, userID string) error
}

// Service implements the credential and session lifecycle.
type Service struct {
	Users   UsersRepo
	Tokens  TokensRepo
	JWT     *sharedauth.Manager
	Records RecordsPurger
}

func NewService(users UsersRepo, tokens TokensRepo, jwt *sharedauth.Manager, records RecordsPurger) *Service {
	return &Service{Users: users, Tokens: tokens, JWT: jwt, Records: records}
}

// Register creates an account and opens a session.
func (s *Service) Register(ctx context.Context, name, email, password string) (TokenPair, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return TokenPair{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return TokenPair{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return TokenPair{}, err
	}

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session. Unknown email and bad
// password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Refresh mints a new access token for a refresh token that both
// verifies and is still present in the persisted token set. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.JWT.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	present, err := s.Tokens.Exists(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if !present {
		return "", ErrTokenRevoked
	}

	return s.JWT.MintAccess(claims.Subject, claims.Email)
}

// Logout revokes a refresh token. A token that was never issued or was
// already revoked reports ErrTokenNotFound.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidInput
	}
	return s.Tokens.Delete(ctx, refreshToken)
}

// Profile returns the user's public fields.
func (s *Service) Profile(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Users.GetByID(ctx, userID)
}

// UpdateProfile renames the user and/or changes the password. A password
// change requires the matching current password.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, currentPassword, newPassword string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" && newPassword == "" {
		return ErrInvalidInput
	}

	if currentPassword != "" && newPassword != "" {
		user, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
			return ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.Users.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return err
		}
	} else if newPassword != "" {
		return ErrInvalidInput
	}

	if name != "" {
		return s.Users.UpdateName(ctx, userID, name)
	}
	return nil
}

// DeleteAccount removes the user together with its sessions and records.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.Tokens.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if s.Records != nil {
		if err := s.Records.DeleteByUser(ctx, userID); err != nil {
			return err
		}
	}
	return s.Users.Delete(ctx, userID)
}

func (s *Service) openSession(ctx context.Context, user User) (TokenPair, error) {
	access, err := s.JWT.MintAccess(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.JWT.MintRefresh(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Tokens.Create(ctx, user.ID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
