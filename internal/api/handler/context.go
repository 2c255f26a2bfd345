package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/api/middleware"
	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A missing
// user id means the middleware did not run on this route.
func ctxIdentity(c echo.Context) (userID string, roles domain.RoleSet, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
	}
	roles, _ = c.Get(middleware.CtxRoles).(domain.RoleSet)
	return userID, roles, nil
}

// wireRoles renders a role slice in the response form, e.g. ["ROLE_ADMIN"].
func wireRoles(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.WireName())
	}
	return out
}
