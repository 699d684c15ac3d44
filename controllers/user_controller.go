package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users  UserService
	logger *slog.Logger
}

func NewUserController(users UserService, logger *slog.Logger) *UserController {
	return &UserController{users: users, logger: logger}
}

// @Summary List users
// @Description Profiles with the "user" role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=[]models.Profile}
// @Router /users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.users.List(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: users})
}

// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} models.Response{data=models.Profile}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramUUID(c, ctrl.logger, "id", "Invalid user ID")
	if !ok {
		return
	}

	user, err := ctrl.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: user})
}
