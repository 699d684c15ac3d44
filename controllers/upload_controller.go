package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploads UploadService
	logger  *slog.Logger
}

func NewUploadController(uploads UploadService, logger *slog.Logger) *UploadController {
	return &UploadController{uploads: uploads, logger: logger}
}

// @Summary Upload image
// @Description Upload a cover or avatar image; use the returned url as cover_image_url or avatar_url
// @Tags uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "jpg, jpeg, png, gif or webp"
// @Param kind formData string false "covers or avatars"
// @Success 201 {object} models.Response{data=models.UploadResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /uploads/image [post]
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		respondError(c, ctrl.logger, models.ValidationError("image is required"))
		return
	}

	result, err := ctrl.uploads.UploadImage(c.Request.Context(), header, c.PostForm("kind"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data:    result,
	})
}
