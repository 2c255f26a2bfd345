package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

func newRoleContext(e *echo.Echo, userID string, roles domain.RoleSet) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserID, userID)
	c.Set(CtxRoles, roles)
	return c
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "u1", domain.NewRoleSet(domain.RoleAdmin))

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_Denies(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "u1", domain.NewRoleSet(domain.RoleEmployee))

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Require Admin Role!" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestRequireRole_InternMessage(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "u1", domain.NewRoleSet(domain.RoleEmployee))

	handler := RequireRole(domain.RoleIntern)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Require Intern Role!" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestRequireRole_MissingContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without resolved roles, got %v", err)
	}
}

func TestRequireSelfOrRole_Self(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "u1", domain.NewRoleSet(domain.RoleEmployee))
	c.SetParamNames("userId")
	c.SetParamValues("u1")

	called := false
	handler := RequireSelfOrRole("userId", domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSelfOrRole_AdminCrossUser(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "admin1", domain.NewRoleSet(domain.RoleAdmin))
	c.SetParamNames("userId")
	c.SetParamValues("u2")

	called := false
	handler := RequireSelfOrRole("userId", domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSelfOrRole_DeniesOtherUser(t *testing.T) {
	e := echo.New()
	c := newRoleContext(e, "u1", domain.NewRoleSet(domain.RoleEmployee))
	c.SetParamNames("userId")
	c.SetParamValues("u2")

	handler := RequireSelfOrRole("userId", domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Access denied. You can only update your own profile." {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
