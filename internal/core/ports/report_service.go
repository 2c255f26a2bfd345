package ports

import (
	"context"
	"time"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// ReportFilter is the optional date window shared by all reports.
type ReportFilter struct {
	DateFrom time.Time
	DateTo   time.Time
}

// UserStats is the admin dashboard summary.
type UserStats struct {
	TotalUsers     int `json:"totalUsers"`
	AdminCount     int `json:"adminCount"`
	EmployeeCount  int `json:"employeeCount"`
	InternCount    int `json:"internCount"`
	RecentActivity int `json:"recentActivity"` // registrations in the last 30 days
}

// UserReport lists users in the window plus headline numbers.
type UserReport struct {
	Users   []*domain.User    `json:"users"`
	Summary UserReportSummary `json:"summary"`
}

type UserReportSummary struct {
	TotalUsers        int `json:"totalUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
	ActiveUsers       int `json:"activeUsers"`
}

// RegistrationReport groups sign-ups by calendar day.
type RegistrationReport struct {
	Users   []*domain.User            `json:"users"`
	Summary RegistrationReportSummary `json:"summary"`
}

type RegistrationReportSummary struct {
	TotalRegistrations  int            `json:"totalRegistrations"`
	RegistrationsByDate map[string]int `json:"registrationsByDate"`
	AveragePerDay       float64        `json:"averagePerDay"`
}

// AttendanceReport lists attendance records in the window with per-report
// aggregates. Average working hours is rounded to 2 decimals here, at the
// reporting layer only.
type AttendanceReport struct {
	Attendances []*domain.AttendanceRecord `json:"attendances"`
	Summary     AttendanceReportSummary    `json:"summary"`
}

type AttendanceReportSummary struct {
	TotalRecords        int     `json:"totalRecords"`
	PresentDays         int     `json:"presentDays"`
	AbsentDays          int     `json:"absentDays"`
	AverageWorkingHours float64 `json:"averageWorkingHours"`
}

// ReportService is the read-only aggregation surface for admins.
type ReportService interface {
	UserStats(ctx context.Context) (*UserStats, error)
	UserReport(ctx context.Context, filter ReportFilter) (*UserReport, error)
	RegistrationReport(ctx context.Context, filter ReportFilter) (*RegistrationReport, error)
	AttendanceReport(ctx context.Context, filter ReportFilter) (*AttendanceReport, error)
	// UsersCSV and AttendanceCSV render full exports, header row included.
	UsersCSV(ctx context.Context) ([]byte, error)
	AttendanceCSV(ctx context.Context) ([]byte, error)
}
