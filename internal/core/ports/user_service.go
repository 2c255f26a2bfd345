package ports

import (
	"context"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// CreateUserInput is an admin-created account. All fields except FullName are
// required; the role must resolve to an enum member.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	RoleName string
}

// UpdateUserInput carries a partial update. Nil pointers leave the field
// untouched. RoleName is applied only when the acting user is an admin.
type UpdateUserInput struct {
	Username        *string
	Email           *string
	FullName        *string
	Password        *string
	RoleName        *string
	InternshipStart *time.Time
	InternshipEnd   *time.Time
}

// UserService covers profile access and administrative account management.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// UpdateUser applies in to the target user. actingIsAdmin gates the role
	// change; the self-or-admin access decision itself is made by the caller.
	UpdateUser(ctx context.Context, id string, in UpdateUserInput, actingIsAdmin bool) (*domain.User, error)
	ResetPassword(ctx context.Context, id, password string) error
	DeleteUser(ctx context.Context, id string) error
	Roles() []domain.Role

	InternshipPeriod(ctx context.Context, userID string) (*domain.InternshipPeriod, error)
	SetInternshipPeriod(ctx context.Context, userID string, start, end time.Time) (*domain.InternshipPeriod, error)
}
