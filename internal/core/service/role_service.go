package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/policy"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// RoleService owns role administration: changing a user's role and listing
// the directory. Both are manager-only.
type RoleService struct {
	users    ports.IdentityDirectory
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewRoleService(users ports.IdentityDirectory, sessions ports.SessionStore, logger zerolog.Logger) *RoleService {
	return &RoleService{users: users, sessions: sessions, logger: logger}
}

// ChangeRole sets the target user's role. When a manager changes their own
// role, their live session is refreshed after the durable write, so a
// self-demotion takes effect without re-authenticating.
func (s *RoleService) ChangeRole(ctx context.Context, session domain.SessionContext, targetUserID int64, newRole string) (*domain.User, error) {
	if !policy.Authorize(policy.ChangeRole, session) {
		return nil, domain.ErrUnauthorized
	}

	role, err := domain.ParseRole(newRole)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("find user", err)
	}

	if err := s.users.SetRole(ctx, targetUserID, role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("set role", err)
	}
	previous := user.Role
	user.Role = role

	if session.UserID == targetUserID {
		// Must happen after the durable write: the session's cached role now
		// reflects what the directory says.
		if err := s.sessions.UpdateRole(ctx, session.Token, role); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", targetUserID).Msg("failed to refresh session role")
		}
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("from", string(previous)).
		Str("to", string(role)).
		Int64("changed_by", session.UserID).
		Msg("role changed")

	return user, nil
}

// ListUsers returns the directory, optionally restricted to one role. An
// unparseable role filter is an input error, never a silent full listing.
func (s *RoleService) ListUsers(ctx context.Context, session domain.SessionContext, roleFilter string) ([]domain.User, error) {
	if !policy.Authorize(policy.ListUsers, session) {
		return nil, domain.ErrUnauthorized
	}

	var filter *domain.Role
	if roleFilter != "" {
		role, err := domain.ParseRole(roleFilter)
		if err != nil {
			return nil, err
		}
		filter = &role
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
