package ports

import (
	"context"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// ListUsersFilter carries the optional creation-date window used by reports.
type ListUsersFilter struct {
	CreatedFrom time.Time // optional: created_at >= CreatedFrom
	CreatedTo   time.Time // optional: created_at <= CreatedTo
}

// UserRepository defines persistence operations for users and their role
// assignment. Username and email are unique; Create surfaces violations as
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users newest first, optionally windowed by creation date.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
