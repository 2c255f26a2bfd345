package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/api/metrics"
	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/service"
)

// RequireRole enforces that the resolved role set contains the required role.
// Runs after Auth; deniable only, never silently continues.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(CtxRoles).(domain.RoleSet)
			if err := service.RequireRole(roles, required); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues(string(required)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, requireMessage(required))
			}
			return next(c)
		}
	}
}

// RequireSelfOrRole allows the request when the path parameter identifies the
// acting user themselves, or when their role set contains the required role.
// A non-admin can only ever touch their own resource.
func RequireSelfOrRole(param string, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actingID, _ := c.Get(CtxUserID).(string)
			roles, _ := c.Get(CtxRoles).(domain.RoleSet)

			if err := service.RequireSelfOrRole(actingID, c.Param(param), roles, required); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues(string(required)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. You can only update your own profile.")
			}
			return next(c)
		}
	}
}

// requireMessage renders the wire-contract denial, e.g. "Require Admin Role!".
func requireMessage(r domain.Role) string {
	name := string(r)
	return "Require " + strings.ToUpper(name[:1]) + name[1:] + " Role!"
}
