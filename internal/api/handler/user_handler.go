package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// UserHandler handles profile and administrative account endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userResponse struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName,omitempty"`
	Roles           []string   `json:"roles"`
	InternshipStart *time.Time `json:"internshipStart,omitempty"`
	InternshipEnd   *time.Time `json:"internshipEnd,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		Roles:           wireRoles(u.Roles),
		InternshipStart: u.InternshipStart,
		InternshipEnd:   u.InternshipEnd,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type updateUserRequest struct {
	Username        *string    `json:"username"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	FullName        *string    `json:"fullName"`
	Password        *string    `json:"password" validate:"omitempty,min=6"`
	Role            *string    `json:"role"`
	InternshipStart *time.Time `json:"internshipStart"`
	InternshipEnd   *time.Time `json:"internshipEnd"`
}

func (r *updateUserRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username:        r.Username,
		Email:           r.Email,
		FullName:        r.FullName,
		Password:        r.Password,
		RoleName:        r.Role,
		InternshipStart: r.InternshipStart,
		InternshipEnd:   r.InternshipEnd,
	}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName"`
	Role     string `json:"role" validate:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Profile returns the authenticated user's own record, password excluded.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile is the self-service variant of UpdateUser: the target is
// always the authenticated user, and role changes are never applied.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateUser(c.Request().Context(), userID, req.toInput(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User updated successfully!",
		"user":    toUserResponse(updated),
	})
}

// ListUsers returns all accounts, newest first. Admin only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateUser creates an account with a single role. Admin only.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		RoleName: req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User created successfully!",
		"user":    toUserResponse(user),
	})
}

// GetUser returns one account by id. Admin only.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser updates the target user. Guarded by self-or-admin; only an
// actual admin may change the role.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	_, roles, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateUser(c.Request().Context(), c.Param("userId"), req.toInput(), roles.Has(domain.RoleAdmin))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User updated successfully!",
		"user":    toUserResponse(updated),
	})
}

// ResetPassword sets a new password on the target account. Admin only.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ResetPassword(c.Request().Context(), c.Param("userId"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// DeleteUser removes an account. Admin only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userService.DeleteUser(c.Request().Context(), c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ListRoles returns the fixed role enumeration. Admin only.
func (h *UserHandler) ListRoles(c echo.Context) error {
	type roleResponse struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	roles := h.userService.Roles()
	out := make([]roleResponse, 0, len(roles))
	for i, r := range roles {
		out = append(out, roleResponse{ID: i + 1, Name: string(r)})
	}
	return c.JSON(http.StatusOK, out)
}
