package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// AuthService implements registration, login, and logout.
type AuthService struct {
	users    ports.IdentityDirectory
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewAuthService(users ports.IdentityDirectory, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// Register creates a new account. The role is always employee regardless of
// what the caller sent; only role administration can change it later.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	var violations []string
	if strings.TrimSpace(username) == "" {
		violations = append(violations, "username must not be empty or blank")
	}
	if strings.TrimSpace(password) == "" {
		violations = append(violations, "password must not be empty or blank")
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, storageErr("create user", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies credentials and establishes a session. A wrong username and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, storageErr("find user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Establish(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, storageErr("establish session", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}

// Logout invalidates the session behind the token. Logging out without a
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return storageErr("invalidate session", err)
	}
	return nil
}
