package ports

import (
	"context"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// TokenService issues and verifies signed, time-limited identity tokens.
// Verification is pure and stateless: no store access, safe under unlimited
// concurrency.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify validates signature and expiry and returns the embedded user id.
	// Failures are domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid
	// or domain.ErrTokenExpired.
	Verify(raw string) (string, error)
}

// SignUpInput carries a public registration request. RoleNames defaults to
// the employee role when empty.
type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	FullName        string
	RoleNames       []string
	InternshipStart *time.Time
	InternshipEnd   *time.Time
}

// SignInResult is a successful authentication: the signed token plus the
// resolved user including role assignment.
type SignInResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration and sign-in.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, username, password string) (*SignInResult, error)
}

// SignInThrottle limits failed sign-in attempts per username. Implementations
// are expected to fail open: a throttle backend outage must not lock users out.
type SignInThrottle interface {
	// Blocked reports whether the username has exhausted its attempts.
	Blocked(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful sign-in.
	Reset(ctx context.Context, username string) error
}
