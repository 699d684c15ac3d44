package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

// ProfileController serves the caller's own profile.
type ProfileController struct {
	users  UserService
	logger *slog.Logger
}

func NewProfileController(users UserService, logger *slog.Logger) *ProfileController {
	return &ProfileController{users: users, logger: logger}
}

// @Summary Get user profile
// @Description Get current user profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.Profile}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/profile [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}

	profile, err := ctrl.users.Get(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: profile})
}

// @Summary Update user profile
// @Description Partial update of username, full name, bio and avatar. Usernames stay unique.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.Response{data=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/profile [put]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	profile, err := ctrl.users.UpdateProfile(c.Request.Context(), principal.ID, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    profile,
	})
}

// @Summary Change password
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /users/change-password [post]
func (ctrl *ProfileController) ChangePassword(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	if err := ctrl.users.ChangePassword(c.Request.Context(), principal, req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password changed successfully",
	})
}
