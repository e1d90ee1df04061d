package domain

// SessionContext is the authenticated identity attached to a request, derived
// once per request from the session store. The zero value is anonymous.
type SessionContext struct {
	// Token is the opaque session identifier the context was resolved from.
	// It never leaves the server side of a response.
	Token    string `json:"-"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Authenticated reports whether the context carries a logged-in identity.
func (s SessionContext) Authenticated() bool {
	return s.UserID != 0
}
