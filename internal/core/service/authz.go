package service

import (
	"context"
	"errors"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// Guard resolves a verified token into a role set and enforces role-based
// access checks. Authenticate is invoked once per request; the resolved set
// is cached request-side so later checks are pure membership tests.
type Guard struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewGuard(tokens ports.TokenService, users ports.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate verifies the raw token and loads the user's current role
// assignment. A token for a user deleted after issuance is still valid per
// TTL, but resolution fails with ErrUserNotFound.
func (g *Guard) Authenticate(ctx context.Context, raw string) (*domain.User, domain.RoleSet, error) {
	userID, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, nil, err
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	return user, user.RoleSet(), nil
}

// RequireRole allows iff the set contains the required role.
func RequireRole(set domain.RoleSet, required domain.Role) error {
	if !set.Has(required) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireSelfOrRole is the ownership-or-privilege rule used by
// profile-update-style operations: allowed when the acting user targets
// themselves, or when their role set contains the required role. Self-access
// never requires a role.
func RequireSelfOrRole(actingID, targetID string, set domain.RoleSet, required domain.Role) error {
	if actingID != "" && actingID == targetID {
		return nil
	}
	return RequireRole(set, required)
}
