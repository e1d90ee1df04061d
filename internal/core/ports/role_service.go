package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// RoleService owns role changes and directory listings, both manager-only.
type RoleService interface {
	// ChangeRole sets the target user's role. When the caller changes their own
	// role, their live session is refreshed immediately.
	ChangeRole(ctx context.Context, session domain.SessionContext, targetUserID int64, newRole string) (*domain.User, error)
	// ListUsers returns users, optionally restricted to one role.
	ListUsers(ctx context.Context, session domain.SessionContext, roleFilter string) ([]domain.User, error)
}
