package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// SessionStore issues and resolves opaque session tokens. Sessions are
// server-side state: they can be invalidated, and their cached role can be
// refreshed in place when the user's role changes mid-session.
type SessionStore interface {
	// Establish creates a session bound to the identity and returns its token.
	Establish(ctx context.Context, userID int64, username string, role domain.Role) (string, error)
	// Current resolves a token to its SessionContext. An unknown or expired
	// token yields the anonymous (zero) context with no error.
	Current(ctx context.Context, token string) (domain.SessionContext, error)
	// Invalidate destroys the session. Unknown tokens are a no-op.
	Invalidate(ctx context.Context, token string) error
	// UpdateRole refreshes the cached role of a live session. It affects only
	// the session, never the identity directory.
	UpdateRole(ctx context.Context, token string, role domain.Role) error
}
