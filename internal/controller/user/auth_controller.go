package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/controller"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(as service.AuthService) *AuthController {
	return &AuthController{authService: as}
}

// Signup godoc
// @Summary Register a new account
// @Description Students and admins are approved immediately; teachers wait for admin approval.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.Signup(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to register user")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in and obtain a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials, suspended or unapproved account"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.Login(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to log in")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile godoc
// @Summary Current user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	resp, err := c.authService.Profile(user.ID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to load profile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /me [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.UpdateProfile(user.ID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update profile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /me/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	if err := c.authService.ChangePassword(user.ID, req); err != nil {
		controller.RespondError(ctx, err, "Failed to change password")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed"})
}
