package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

func TestGuard_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", time.Hour)
	guard := NewGuard(tokens, repo)

	created, err := repo.Create(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []domain.Role{domain.RoleAdmin, domain.RoleEmployee},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	token, err := tokens.Issue(created.ID)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	user, roles, err := guard.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
	if !roles.Has(domain.RoleAdmin) || !roles.Has(domain.RoleEmployee) {
		t.Fatalf("role set incomplete: %v", roles.Roles())
	}
	if roles.Has(domain.RoleIntern) {
		t.Fatalf("unexpected intern role")
	}
}

func TestGuard_Authenticate_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", time.Hour)
	guard := NewGuard(tokens, repo)

	created, _ := repo.Create(context.Background(), &domain.User{Username: "bob", Email: "bob@example.com"})
	token, _ := tokens.Issue(created.ID)

	// The token stays valid per TTL, but resolution must fail.
	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, _, err := guard.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGuard_Authenticate_BadToken(t *testing.T) {
	guard := NewGuard(NewTokenService("secret", time.Hour), newStubUserRepo())

	if _, _, err := guard.Authenticate(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	set := domain.NewRoleSet(domain.RoleEmployee)

	if err := RequireRole(set, domain.RoleEmployee); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := RequireRole(set, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireRole(nil, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on empty set, got %v", err)
	}
}

func TestRequireSelfOrRole(t *testing.T) {
	// Self-access never requires a role, even with an empty set.
	if err := RequireSelfOrRole("u1", "u1", nil, domain.RoleAdmin); err != nil {
		t.Fatalf("expected allow for self, got %v", err)
	}

	admin := domain.NewRoleSet(domain.RoleAdmin)
	if err := RequireSelfOrRole("u1", "u2", admin, domain.RoleAdmin); err != nil {
		t.Fatalf("expected allow for admin, got %v", err)
	}

	employee := domain.NewRoleSet(domain.RoleEmployee)
	if err := RequireSelfOrRole("u1", "u2", employee, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// An empty acting id must not match an empty target id.
	if err := RequireSelfOrRole("", "", nil, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for empty ids, got %v", err)
	}
}

var _ ports.TokenService = (*TokenService)(nil)
var _ ports.AuthService = (*AuthService)(nil)
var _ ports.AttendanceService = (*AttendanceService)(nil)
var _ ports.UserService = (*UserService)(nil)
var _ ports.ReportService = (*ReportService)(nil)
