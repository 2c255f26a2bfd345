package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/api/metrics"
	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signUpRequest struct {
	Username        string     `json:"username" validate:"required,min=3"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6"`
	FullName        string     `json:"fullName"`
	Roles           []string   `json:"roles"`
	InternshipStart *time.Time `json:"internshipStart"`
	InternshipEnd   *time.Time `json:"internshipEnd"`
}

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	AccessToken string   `json:"accessToken"`
}

// SignUp registers a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		RoleNames:       req.Roles,
		InternshipStart: req.InternshipStart,
		InternshipEnd:   req.InternshipEnd,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully!"})
}

// SignIn authenticates a user and returns a signed token plus the resolved
// role names in the ROLE_-prefixed wire form.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, signInResponse{
		ID:          result.User.ID,
		Username:    result.User.Username,
		Email:       result.User.Email,
		Roles:       wireRoles(result.User.Roles),
		AccessToken: result.Token,
	})
}

func signInResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "invalid_credentials"
	}
}
