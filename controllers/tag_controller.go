package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	tags   TagService
	logger *slog.Logger
}

func NewTagController(tags TagService, logger *slog.Logger) *TagController {
	return &TagController{tags: tags, logger: logger}
}

// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Tag}
// @Router /tags [get]
func (ctrl *TagController) GetTags(c *gin.Context) {
	tags, err := ctrl.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: tags})
}

// @Summary Create tag
// @Description Tag names are stored lowercase (Admin only)
// @Tags tags
// @Accept json
// @Produce json
// @Param request body models.TagRequest true "Tag"
// @Security BearerAuth
// @Success 201 {object} models.Response{data=models.Tag}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /tags [post]
func (ctrl *TagController) CreateTag(c *gin.Context) {
	var req models.TagRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	tag, err := ctrl.tags.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Tag created successfully",
		Data:    tag,
	})
}
