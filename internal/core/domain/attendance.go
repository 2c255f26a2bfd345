package domain

import (
	"errors"
	"time"
)

var ErrNoOpenSession = errors.New("no active check-in found")
var ErrSessionAlreadyOpen = errors.New("session already open")

// AttendanceRecord is one work session for one user. A record with a nil
// CheckOutTime is an open session; at close, WorkingHours is computed once
// and never recomputed.
type AttendanceRecord struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	WorkingHours *float64   `json:"workingHours,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Open reports whether the session has not been checked out yet.
func (r *AttendanceRecord) Open() bool {
	return r.CheckOutTime == nil
}

// Hours returns the wall-clock elapsed time between check-in and checkOut in
// hours, sub-second precision preserved. Rounding belongs to the reporting
// layer.
func (r *AttendanceRecord) Hours(checkOut time.Time) float64 {
	return checkOut.Sub(r.CheckInTime).Seconds() / 3600
}
