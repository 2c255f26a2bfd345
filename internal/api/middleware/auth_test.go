package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

type stubGuard struct {
	authenticateFn func(ctx context.Context, raw string) (*domain.User, domain.RoleSet, error)
}

func (s *stubGuard) Authenticate(ctx context.Context, raw string) (*domain.User, domain.RoleSet, error) {
	return s.authenticateFn(ctx, raw)
}

func okGuard(t *testing.T, wantToken string) *stubGuard {
	return &stubGuard{
		authenticateFn: func(_ context.Context, raw string) (*domain.User, domain.RoleSet, error) {
			if raw != wantToken {
				t.Fatalf("unexpected token: %q", raw)
			}
			user := &domain.User{ID: "u1", Username: "alice", Roles: []domain.Role{domain.RoleAdmin}}
			return user, user.RoleSet(), nil
		},
	}
}

func TestAuthMiddleware_AccessTokenHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-access-token", "token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(okGuard(t, "token123"))(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		roles, ok := c.Get(CtxRoles).(domain.RoleSet)
		if !ok || !roles.Has(domain.RoleAdmin) {
			t.Fatalf("role set not cached in context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestAuthMiddleware_BearerAlias(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(okGuard(t, "token123"))(func(c echo.Context) error {
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

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	guard := &stubGuard{
		authenticateFn: func(context.Context, string) (*domain.User, domain.RoleSet, error) {
			t.Fatalf("guard should not be called")
			return nil, nil, nil
		},
	}
	handler := Auth(guard)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "No token provided!" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-access-token", "expired")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	guard := &stubGuard{
		authenticateFn: func(context.Context, string) (*domain.User, domain.RoleSet, error) {
			return nil, nil, domain.ErrTokenExpired
		},
	}
	handler := Auth(guard)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Unauthorized!" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-access-token", "valid-but-gone")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	guard := &stubGuard{
		authenticateFn: func(context.Context, string) (*domain.User, domain.RoleSet, error) {
			return nil, nil, domain.ErrUserNotFound
		},
	}
	handler := Auth(guard)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %v", err)
	}
}
