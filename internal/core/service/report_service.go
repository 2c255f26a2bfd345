package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// ReportService aggregates user and attendance data for the admin dashboard
// and CSV exports. Pure reads; all rounding happens here, never in the
// attendance engine.
type ReportService struct {
	users      ports.UserRepository
	attendance ports.AttendanceRepository
	log        zerolog.Logger

	now func() time.Time
}

func NewReportService(users ports.UserRepository, attendance ports.AttendanceRepository, log zerolog.Logger) *ReportService {
	return &ReportService{users: users, attendance: attendance, log: log, now: time.Now}
}

func (s *ReportService) UserStats(ctx context.Context) (*ports.UserStats, error) {
	users, err := s.users.List(ctx, ports.ListUsersFilter{})
	if err != nil {
		return nil, err
	}

	stats := &ports.UserStats{TotalUsers: len(users)}
	cutoff := s.now().AddDate(0, 0, -30)
	for _, u := range users {
		set := u.RoleSet()
		switch {
		case set.Has(domain.RoleAdmin):
			stats.AdminCount++
		case set.Has(domain.RoleEmployee):
			stats.EmployeeCount++
		case set.Has(domain.RoleIntern):
			stats.InternCount++
		}
		if u.CreatedAt.After(cutoff) {
			stats.RecentActivity++
		}
	}
	return stats, nil
}

func (s *ReportService) UserReport(ctx context.Context, filter ports.ReportFilter) (*ports.UserReport, error) {
	users, err := s.users.List(ctx, ports.ListUsersFilter{
		CreatedFrom: filter.DateFrom,
		CreatedTo:   filter.DateTo,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	newThisMonth := 0
	for _, u := range users {
		if u.CreatedAt.Month() == now.Month() && u.CreatedAt.Year() == now.Year() {
			newThisMonth++
		}
	}

	return &ports.UserReport{
		Users: users,
		Summary: ports.UserReportSummary{
			TotalUsers:        len(users),
			NewUsersThisMonth: newThisMonth,
			ActiveUsers:       len(users),
		},
	}, nil
}

func (s *ReportService) RegistrationReport(ctx context.Context, filter ports.ReportFilter) (*ports.RegistrationReport, error) {
	users, err := s.users.List(ctx, ports.ListUsersFilter{
		CreatedFrom: filter.DateFrom,
		CreatedTo:   filter.DateTo,
	})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int)
	for _, u := range users {
		byDate[u.CreatedAt.Format("2006-01-02")]++
	}

	avg := 0.0
	if len(byDate) > 0 {
		avg = float64(len(users)) / float64(len(byDate))
	}

	return &ports.RegistrationReport{
		Users: users,
		Summary: ports.RegistrationReportSummary{
			TotalRegistrations:  len(users),
			RegistrationsByDate: byDate,
			AveragePerDay:       avg,
		},
	}, nil
}

func (s *ReportService) AttendanceReport(ctx context.Context, filter ports.ReportFilter) (*ports.AttendanceReport, error) {
	records, err := s.attendance.List(ctx, ports.ListAttendanceFilter{
		CreatedFrom: filter.DateFrom,
		CreatedTo:   filter.DateTo,
	})
	if err != nil {
		return nil, err
	}

	present := 0
	totalHours := 0.0
	for _, r := range records {
		if !r.CheckInTime.IsZero() {
			present++
		}
		if r.WorkingHours != nil {
			totalHours += *r.WorkingHours
		}
	}

	avg := 0.0
	if len(records) > 0 {
		avg = round2(totalHours / float64(len(records)))
	}

	return &ports.AttendanceReport{
		Attendances: records,
		Summary: ports.AttendanceReportSummary{
			TotalRecords:        len(records),
			PresentDays:         present,
			AbsentDays:          len(records) - present,
			AverageWorkingHours: avg,
		},
	}, nil
}

// UsersCSV renders all users, one row each, first role only.
func (s *ReportService) UsersCSV(ctx context.Context) ([]byte, error) {
	users, err := s.users.List(ctx, ports.ListUsersFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Username", "Email", "Role", "Created Date", "Updated Date"})
	for _, u := range users {
		role := "No Role"
		if len(u.Roles) > 0 {
			role = string(u.Roles[0])
		}
		_ = w.Write([]string{
			u.ID,
			u.Username,
			u.Email,
			role,
			u.CreatedAt.Format("2006-01-02"),
			u.UpdatedAt.Format("2006-01-02"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write users csv: %w", err)
	}

	s.log.Debug().Int("rows", len(users)).Msg("users csv exported")
	return buf.Bytes(), nil
}

// AttendanceCSV renders all attendance records with usernames resolved.
func (s *ReportService) AttendanceCSV(ctx context.Context) ([]byte, error) {
	records, err := s.attendance.List(ctx, ports.ListAttendanceFilter{})
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, ports.ListUsersFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "User", "Check In", "Check Out", "Working Hours", "Date"})
	for _, r := range records {
		username := names[r.UserID]
		if username == "" {
			username = "Unknown"
		}
		checkOut := ""
		if r.CheckOutTime != nil {
			checkOut = r.CheckOutTime.Format(time.RFC3339)
		}
		hours := "0"
		if r.WorkingHours != nil {
			hours = strconv.FormatFloat(*r.WorkingHours, 'f', -1, 64)
		}
		_ = w.Write([]string{
			r.ID,
			username,
			r.CheckInTime.Format(time.RFC3339),
			checkOut,
			hours,
			r.CreatedAt.Format("2006-01-02"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write attendance csv: %w", err)
	}

	s.log.Debug().Int("rows", len(records)).Msg("attendance csv exported")
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
