package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// ReportHandler serves the admin-only reporting and CSV export endpoints.
type ReportHandler struct {
	reportService ports.ReportService
}

func NewReportHandler(reportService ports.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportFilter parses the optional ?dateFrom=&dateTo= window. Both bounds
// must parse as RFC 3339 or plain dates; an invalid value is ignored rather
// than rejected, matching the legacy behaviour.
func reportFilter(c echo.Context) ports.ReportFilter {
	var f ports.ReportFilter
	if from := c.QueryParam("dateFrom"); from != "" {
		if t, err := parseDate(from); err == nil {
			f.DateFrom = t
		}
	}
	if to := c.QueryParam("dateTo"); to != "" {
		if t, err := parseDate(to); err == nil {
			f.DateTo = t
		}
	}
	return f
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Stats returns the dashboard summary.
func (h *ReportHandler) Stats(c echo.Context) error {
	stats, err := h.reportService.UserStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Users returns the user report for the requested window.
func (h *ReportHandler) Users(c echo.Context) error {
	report, err := h.reportService.UserReport(c.Request().Context(), reportFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Registrations returns sign-ups grouped by day.
func (h *ReportHandler) Registrations(c echo.Context) error {
	report, err := h.reportService.RegistrationReport(c.Request().Context(), reportFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Attendance returns the attendance report for the requested window.
func (h *ReportHandler) Attendance(c echo.Context) error {
	report, err := h.reportService.AttendanceReport(c.Request().Context(), reportFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportUsersCSV streams the full user export.
func (h *ReportHandler) ExportUsersCSV(c echo.Context) error {
	data, err := h.reportService.UsersCSV(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=users_export.csv`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// ExportAttendanceCSV streams the full attendance export.
func (h *ReportHandler) ExportAttendanceCSV(c echo.Context) error {
	data, err := h.reportService.AttendanceCSV(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=attendance_export.csv`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
