package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// sessionKey is the echo context key the resolved SessionContext is stored
// under.
const sessionKey = "session"

// Session resolves the bearer token into a SessionContext and injects it into
// the request context. Requests without a token (or with an unknown one) carry
// the anonymous context; the core services decide what that may do.
func Session(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				c.Set(sessionKey, domain.SessionContext{})
				return next(c)
			}

			sess, err := store.Current(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// FromContext returns the SessionContext injected by Session, or the
// anonymous context when the middleware did not run.
func FromContext(c echo.Context) domain.SessionContext {
	sess, _ := c.Get(sessionKey).(domain.SessionContext)
	return sess
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
