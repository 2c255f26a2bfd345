package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// InternshipHandler exposes the intern-only start/end window endpoints.
type InternshipHandler struct {
	userService ports.UserService
}

func NewInternshipHandler(userService ports.UserService) *InternshipHandler {
	return &InternshipHandler{userService: userService}
}

type setPeriodRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// SetPeriod records the authenticated intern's window.
func (h *InternshipHandler) SetPeriod(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req setPeriodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	period, err := h.userService.SetInternshipPeriod(c.Request().Context(), userID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Internship period set",
		"period":  period,
	})
}

// GetPeriod returns the window plus the remaining days, rounded up.
func (h *InternshipHandler) GetPeriod(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	period, err := h.userService.InternshipPeriod(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, period)
}
