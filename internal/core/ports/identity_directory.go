package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// IdentityDirectory defines persistence operations over user records.
// Implementations return domain.ErrUserNotFound for missing lookups and
// domain.ErrUserExists on duplicate usernames.
type IdentityDirectory interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a user with the given credential hash. The role is always
	// employee; the assigned id is returned on the created record.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	SetRole(ctx context.Context, id int64, role domain.Role) error
	// List returns users ordered by id ascending. A nil roleFilter lists all.
	List(ctx context.Context, roleFilter *domain.Role) ([]domain.User, error)
}
