package ports

import (
	"context"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// AttendanceService is the check-in/check-out state machine, keyed per user.
type AttendanceService interface {
	// CheckIn opens a new session. In the default permissive mode a second
	// check-in while a session is open creates a second open record; in
	// strict mode it fails with domain.ErrSessionAlreadyOpen.
	CheckIn(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	// CheckOut closes the most recently opened still-open session, computing
	// working hours once. Fails with domain.ErrNoOpenSession when none exists.
	CheckOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	// ListForUser returns the user's records, newest check-in first.
	ListForUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error)
}
