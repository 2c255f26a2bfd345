package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/api/metrics"
	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// Context keys set by Auth and consumed by the role guards and handlers.
const (
	CtxUserID = "userID"
	CtxUser   = "user"
	CtxRoles  = "roles"
)

// Authenticator resolves a raw token into the current user and role set.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*domain.User, domain.RoleSet, error)
}

// Auth validates the request token and resolves the user's role set exactly
// once, caching it in the echo context. Later role checks are pure membership
// tests against the cached set and never go back to the store.
//
// The token travels in the x-access-token header (wire contract); a standard
// Authorization: Bearer header is accepted as an alias.
func Auth(guard Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "No token provided!")
			}

			user, roles, err := guard.Authenticate(c.Request().Context(), raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUser, user)
			c.Set(CtxRoles, roles)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if token := c.Request().Header.Get("x-access-token"); token != "" {
		return token
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
