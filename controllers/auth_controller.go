package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

// SessionTokenHeader carries the identity provider session on logout.
const SessionTokenHeader = "X-Session-Token"

type AuthController struct {
	auth   AuthService
	logger *slog.Logger
}

func NewAuthController(auth AuthService, logger *slog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Register godoc
// @Summary Register new user
// @Description Create an account with the identity provider and a "user" profile
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	result, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Success:      true,
		Message:      "Registration successful",
		Token:        result.Token,
		User:         result.User,
		SessionToken: result.SessionToken,
	})
}

// Login godoc
// @Summary Login
// @Description Exchange email and password for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success:      true,
		Message:      "Login successful",
		Token:        result.Token,
		User:         result.User,
		SessionToken: result.SessionToken,
	})
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}

	user, err := ctrl.auth.Me(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Success: true, User: *user})
}

// Logout godoc
// @Summary Logout
// @Description Bearer tokens are stateless; a provider session passed in X-Session-Token is revoked
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Param X-Session-Token header string false "Identity provider session token"
// @Success 200 {object} models.Response
// @Failure 502 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	if err := ctrl.auth.Logout(c.Request.Context(), c.GetHeader(SessionTokenHeader)); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logout successful",
	})
}
