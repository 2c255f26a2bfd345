package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username string, roles ...domain.Role) *domain.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Roles:    roles,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return created
}

func TestUserService_CreateUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, testLogger())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
		RoleName: "intern",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleIntern {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
	// FullName falls back to the username when omitted.
	if user.FullName != "alice" {
		t.Fatalf("expected fallback full name, got %q", user.FullName)
	}

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "bob", Email: "bob@example.com", Password: "pass", RoleName: "manager",
	}); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestUserService_UpdateUser_RoleGating(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, testLogger())
	user := seedUser(t, repo, "alice", domain.RoleEmployee)

	role := "admin"
	name := "Alice A."

	// Non-admin update applies fields but never the role.
	updated, err := svc.UpdateUser(context.Background(), user.ID, ports.UpdateUserInput{
		FullName: &name,
		RoleName: &role,
	}, false)
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.FullName != "Alice A." {
		t.Fatalf("full name not applied: %q", updated.FullName)
	}
	if updated.RoleSet().Has(domain.RoleAdmin) {
		t.Fatalf("role change applied for non-admin actor")
	}

	// Admin update applies the role.
	updated, err = svc.UpdateUser(context.Background(), user.ID, ports.UpdateUserInput{RoleName: &role}, true)
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if !updated.RoleSet().Has(domain.RoleAdmin) {
		t.Fatalf("role change not applied for admin actor")
	}
}

func TestUserService_ResetPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, testLogger())
	user := seedUser(t, repo, "bob", domain.RoleEmployee)

	if err := svc.ResetPassword(context.Background(), user.ID, "newpass"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "999", "newpass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, testLogger())
	user := seedUser(t, repo, "carol", domain.RoleEmployee)

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_InternshipPeriod(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, testLogger())
	user := seedUser(t, repo, "dave", domain.RoleIntern)

	if _, err := svc.InternshipPeriod(context.Background(), user.ID); !errors.Is(err, domain.ErrNoInternshipPeriod) {
		t.Fatalf("expected ErrNoInternshipPeriod, got %v", err)
	}

	today := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	start := today.AddDate(0, -1, 0)
	end := today.AddDate(0, 0, 10) // 10 days from now, same clock time

	if _, err := svc.SetInternshipPeriod(context.Background(), user.ID, start, end); err != nil {
		t.Fatalf("SetInternshipPeriod returned error: %v", err)
	}

	period, err := svc.InternshipPeriod(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("InternshipPeriod returned error: %v", err)
	}
	if period.RemainingDays != 10 {
		t.Fatalf("expected 10 remaining days, got %d", period.RemainingDays)
	}
}

func TestRemainingDays_RoundsUp(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	// A partial day counts as a whole remaining day.
	if got := domain.RemainingDays(now.Add(36*time.Hour), now); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := domain.RemainingDays(now.Add(24*time.Hour), now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	// Past windows go negative.
	if got := domain.RemainingDays(now.Add(-48*time.Hour), now); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}
