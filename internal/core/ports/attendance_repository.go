package ports

import (
	"context"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// ListAttendanceFilter carries the optional creation-date window used by reports.
type ListAttendanceFilter struct {
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// FindLatestOpen returns the most recently opened record for the user
	// that has no check-out time, ordered by check-in time descending with
	// the newest-created record winning ties. Returns domain.ErrNoOpenSession
	// when the user has no open session.
	FindLatestOpen(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	// CloseSession sets the check-out time and working hours on the record,
	// conditional on it still being open. Returns domain.ErrNoOpenSession if
	// the record was closed (or deleted) concurrently, so two racing
	// check-outs can never double-close one session.
	CloseSession(ctx context.Context, recordID string, checkOut time.Time, hours float64) (*domain.AttendanceRecord, error)
	// ListByUser returns all records for the user, newest check-in first.
	ListByUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error)
	// List returns records across all users for reporting, newest first.
	List(ctx context.Context, filter ListAttendanceFilter) ([]*domain.AttendanceRecord, error)
}
