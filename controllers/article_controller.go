package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArticleController struct {
	articles ArticleService
	logger   *slog.Logger
}

func NewArticleController(articles ArticleService, logger *slog.Logger) *ArticleController {
	return &ArticleController{articles: articles, logger: logger}
}

// GetArticles godoc
// @Summary List published articles
// @Description Filter by category, tag, author and title search; newest first
// @Tags articles
// @Produce json
// @Param category query int false "Category ID"
// @Param tag query int false "Tag ID"
// @Param author query string false "Author profile ID"
// @Param search query string false "Title contains (case-insensitive)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /articles [get]
func (ctrl *ArticleController) GetArticles(c *gin.Context) {
	filter, err := parseArticleFilter(c)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	page, limit := pagination(c)

	result, err := ctrl.articles.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondPage(c, result, nil)
}

func parseArticleFilter(c *gin.Context) (models.ArticleFilter, error) {
	var f models.ArticleFilter

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return f, models.ValidationError("Invalid category ID")
		}
		f.CategoryID = id
	}
	if raw := strings.TrimSpace(c.Query("tag")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return f, models.ValidationError("Invalid tag ID")
		}
		f.TagID = id
	}
	if raw := strings.TrimSpace(c.Query("author")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, models.ValidationError("Invalid author ID")
		}
		f.AuthorID = id
	}
	f.Search = c.Query("search")
	return f, nil
}

// GetArticleByID godoc
// @Summary Get article
// @Description Article with category, author, tags and up to three related articles. Drafts are only visible to their author and admins.
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Response{data=models.ArticleDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{id} [get]
func (ctrl *ArticleController) GetArticleByID(c *gin.Context) {
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid article ID")
	if !ok {
		return
	}

	article, err := ctrl.articles.Get(c.Request.Context(), id, viewer(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: article})
}

// GetArticlesByAuthor godoc
// @Summary List articles by author
// @Description Published articles; the author and admins see every status and may filter by it
// @Tags articles
// @Produce json
// @Param id path string true "Author profile ID"
// @Param status query string false "draft, published or archived"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /articles/author/{id} [get]
func (ctrl *ArticleController) GetArticlesByAuthor(c *gin.Context) {
	authorID, ok := paramUUID(c, ctrl.logger, "id", "Invalid author ID")
	if !ok {
		return
	}
	page, limit := pagination(c)

	result, err := ctrl.articles.ListByAuthor(c.Request.Context(), authorID, viewer(c), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondPage(c, result, nil)
}

// CreateArticle godoc
// @Summary Create article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateArticleRequest true "Article"
// @Success 201 {object} models.Response{data=models.Article}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /articles [post]
func (ctrl *ArticleController) CreateArticle(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}

	var req models.CreateArticleRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	article, err := ctrl.articles.Create(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Article created successfully",
		Data:    article,
	})
}

// UpdateArticle godoc
// @Summary Update article
// @Description Partial update by the author or an admin. category_id 0 clears the category; tags replace the current set.
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body models.UpdateArticleRequest true "Fields to change"
// @Success 200 {object} models.Response{data=models.Article}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{id} [put]
func (ctrl *ArticleController) UpdateArticle(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid article ID")
	if !ok {
		return
	}

	var req models.UpdateArticleRequest
	if !bindJSON(c, ctrl.logger, &req) {
		return
	}

	article, err := ctrl.articles.Update(c.Request.Context(), id, req, principal)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Article updated successfully",
		Data:    article,
	})
}

// DeleteArticle godoc
// @Summary Delete article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{id} [delete]
func (ctrl *ArticleController) DeleteArticle(c *gin.Context) {
	principal, ok := requirePrincipal(c, ctrl.logger)
	if !ok {
		return
	}
	id, ok := paramInt64(c, ctrl.logger, "id", "Invalid article ID")
	if !ok {
		return
	}

	if err := ctrl.articles.Delete(c.Request.Context(), id, principal); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Article deleted successfully",
	})
}
