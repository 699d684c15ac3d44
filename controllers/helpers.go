package controllers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"news-portal/middleware"
	"news-portal/models"
	"news-portal/services"
	"news-portal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	Me(ctx context.Context, principal models.Principal) (*models.PublicUser, error)
	Logout(ctx context.Context, sessionToken string) error
}

type ArticleService interface {
	List(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.Page[models.Article], error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, viewer *models.Principal, status string, page, limit int) (*models.Page[models.Article], error)
	Get(ctx context.Context, id int64, viewer *models.Principal) (*models.ArticleDetail, error)
	Create(ctx context.Context, req models.CreateArticleRequest, author models.Principal) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.UpdateArticleRequest, requester models.Principal) (*models.Article, error)
	Delete(ctx context.Context, id int64, requester models.Principal) error
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	ListArticles(ctx context.Context, id int64, page, limit int) (*models.Category, *models.Page[models.Article], error)
}

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, req models.TagRequest) (*models.Tag, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error)
	ChangePassword(ctx context.Context, principal models.Principal, req models.ChangePasswordRequest) error
}

type UploadService interface {
	UploadImage(ctx context.Context, header *multipart.FileHeader, kind string) (*models.UploadResult, error)
}

// ConfigureBinding makes gin report binding errors by json field name.
func ConfigureBinding() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.UseJSONFieldNames(v)
	}
}

// respondError renders err with the status of its kind. Messages of
// internal errors are never shown to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind == models.KindInternal {
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	if appErr.Kind == models.KindUpstream {
		logger.Warn("upstream failure", "path", c.FullPath(), "error", err)
	}
	c.JSON(appErr.Kind.HTTPStatus(), models.ErrorResponse{
		Success: false,
		Message: appErr.Message,
	})
}

func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, logger, services.BindingError(err))
		return false
	}
	return true
}

func paramInt64(c *gin.Context, logger *slog.Logger, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respondError(c, logger, models.ValidationError(message))
		return 0, false
	}
	return id, true
}

func paramUUID(c *gin.Context, logger *slog.Logger, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, logger, models.ValidationError(message))
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, limit int) {
	return utils.ParsePagination(c.Query("page"), c.Query("limit"))
}

// requirePrincipal is a guard for handlers mounted behind Authenticate.
func requirePrincipal(c *gin.Context, logger *slog.Logger) (models.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, logger, models.AuthError("Authorization header required"))
		return models.Principal{}, false
	}
	return principal, true
}

func viewer(c *gin.Context) *models.Principal {
	if principal, ok := middleware.GetPrincipal(c); ok {
		return &principal
	}
	return nil
}

func respondPage[T any](c *gin.Context, page *models.Page[T], category *models.Category) {
	c.JSON(http.StatusOK, models.PaginationResponse{
		Success:  true,
		Data:     page.Items,
		Meta:     page.Meta,
		Category: category,
	})
}
