package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// AuthService implements registration, login, and logout.
type AuthService interface {
	// Register creates an account with the employee role.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and establishes a session, returning its token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout invalidates the session behind the token.
	Logout(ctx context.Context, token string) error
}
