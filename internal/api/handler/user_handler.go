package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appmw "github.com/revature/reimbursement-system/internal/api/middleware"
	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// UserHandler handles the user directory and role administration.
type UserHandler struct {
	roles ports.RoleService
}

func NewUserHandler(roles ports.RoleService) *UserHandler {
	return &UserHandler{roles: roles}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type listUsersResponse struct {
	Users []domain.User `json:"users"`
}

// List returns registered users, optionally filtered by role. Managers only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter by role (employee/manager)"
// @Success      200   {object}  listUsersResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.roles.ListUsers(c.Request().Context(), appmw.FromContext(c), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// ChangeRole sets a user's role. Managers only.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Target user id"
// @Param        body  body      changeRoleRequest  true  "New role: employee or manager"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user id must be an integer")
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.roles.ChangeRole(c.Request().Context(), appmw.FromContext(c), userID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
