package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/controller"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
)

type UserController struct {
	userAdminService service.UserAdminService
}

func NewUserController(uas service.UserAdminService) *UserController {
	return &UserController{userAdminService: uas}
}

// ListUsers godoc
// @Summary (Admin) List all users
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	users, err := c.userAdminService.ListUsers(user)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve users")
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// UpdateRole godoc
// @Summary (Admin) Change a user's role
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Param body body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Last admin"
// @Router /admin/users/{user_id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseID(ctx, "user_id")
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.userAdminService.UpdateRole(user, userID, req.Role)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update role")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ApproveUser godoc
// @Summary (Admin) Approve a pending account
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id}/approve [post]
func (c *UserController) ApproveUser(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseID(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.userAdminService.Approve(user, userID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to approve user")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SetActive godoc
// @Summary (Admin) Suspend or reactivate an account
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Param body body dto.SetActiveRequest true "Activation flag"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/users/{user_id}/active [put]
func (c *UserController) SetActive(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseID(ctx, "user_id")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.userAdminService.SetActive(user, userID, *req.IsActive)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update account status")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Tags Admin - Users
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Last admin"
// @Router /admin/users/{user_id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseID(ctx, "user_id")
	if !ok {
		return
	}
	if err := c.userAdminService.DeleteUser(user, userID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete user")
		return
	}
	ctx.Status(http.StatusNoContent)
}
