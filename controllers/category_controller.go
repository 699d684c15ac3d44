package controllers

import (
	"log/slog"
	"net/http"

	"news-portal/models"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categories CategoryService
	logger     *slog.Logger
}

func NewCategoryController(categories CategoryService, logger *slog.Logger) *CategoryController {
	return &CategoryController{categories: categories, logger: logger}
}

// @Summary Get all categories
// @Description Get list of all categories ordered by name
// @Tags categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories, err := ctrl.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: categories})
}

// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response{data=models.Category}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid category ID")
	if !ok {
		return
	}

	category, err := ctrl.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: category})
}

// @Summary List articles in a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/articles [get]
func (ctrl *CategoryController) GetCategoryArticles(c *gin.Context) {
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid category ID")
	if !ok {
		return
	}
	page, limit := pagination(c)

	category, result, err := ctrl.categories.ListArticles(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondPage(c, result, category)
}

// @Summary Create new category
// @Description Create a new category (Admin only)
// @Tags categories
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Security BearerAuth
// @Success 201 {object} models.Response{data=models.Category}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// @Summary Update category
// @Description Update a category (Admin only)
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.Category}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid category ID")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// @Summary Delete category
// @Description Delete a category that no article uses (Admin only)
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid category ID")
	if !ok {
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}
