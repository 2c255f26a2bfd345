package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/api/metrics"
	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// AttendanceHandler exposes the check-in/check-out state machine. All routes
// require authentication; no request bodies.
type AttendanceHandler struct {
	attendanceService ports.AttendanceService
}

func NewAttendanceHandler(attendanceService ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CheckIn opens a new session for the authenticated user.
//
// @Summary      Check in
// @Tags         attendance
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rec, err := h.attendanceService.CheckIn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	metrics.CheckInsTotal.Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Checked in",
		"data":    rec,
	})
}

// CheckOut closes the most recent open session and returns it with the
// computed working hours.
//
// @Summary      Check out
// @Tags         attendance
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rec, err := h.attendanceService.CheckOut(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			metrics.CheckOutsTotal.WithLabelValues("no_open_session").Inc()
		}
		return err
	}
	metrics.CheckOutsTotal.WithLabelValues("closed").Inc()
	if rec.WorkingHours != nil {
		metrics.SessionHours.Observe(*rec.WorkingHours)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Checked out",
		"data":    rec,
	})
}

// History returns the authenticated user's records, newest first.
//
// @Summary      Own attendance history
// @Tags         attendance
// @Produce      json
// @Success      200  {array}  domain.AttendanceRecord
// @Router       /api/attendance/my-attendance [get]
func (h *AttendanceHandler) History(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.attendanceService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
