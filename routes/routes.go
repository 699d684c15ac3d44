package routes

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"news-portal/controllers"
	_ "news-portal/docs"
	"news-portal/middleware"
	"news-portal/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies is everything the router needs. Nil RateLimiter, Metrics
// or MetricsHandler switch that feature off.
type Dependencies struct {
	Logger         *slog.Logger
	Authenticator  *middleware.Authenticator
	RateLimiter    *middleware.RateLimiter
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	OriginURL      string
	StaticDir      string

	Auth       *controllers.AuthController
	Articles   *controllers.ArticleController
	Categories *controllers.CategoryController
	Tags       *controllers.TagController
	Users      *controllers.UserController
	Profile    *controllers.ProfileController
	Uploads    *controllers.UploadController
	Health     *controllers.HealthController
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	controllers.ConfigureBinding()

	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(deps.OriginURL))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", deps.Health.Health)
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	authenticate := deps.Authenticator.Authenticate()
	optionalAuth := deps.Authenticator.OptionalAuth()
	adminOnly := middleware.Authorize(models.RoleAdmin)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		public := auth.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		public.POST("/register", deps.Auth.Register)
		public.POST("/login", deps.Auth.Login)

		auth.GET("/me", authenticate, deps.Auth.Me)
		auth.POST("/logout", authenticate, deps.Auth.Logout)
	}

	articles := api.Group("/articles")
	{
		articles.GET("", deps.Articles.GetArticles)
		articles.GET("/author/:id", optionalAuth, deps.Articles.GetArticlesByAuthor)
		articles.GET("/:id", optionalAuth, deps.Articles.GetArticleByID)
		articles.POST("", authenticate, middleware.Authorize(models.RoleUser, models.RoleAdmin), deps.Articles.CreateArticle)
		articles.PUT("/:id", authenticate, deps.Articles.UpdateArticle)
		articles.DELETE("/:id", authenticate, deps.Articles.DeleteArticle)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", deps.Categories.GetCategories)
		categories.GET("/:id", deps.Categories.GetCategoryByID)
		categories.GET("/:id/articles", deps.Categories.GetCategoryArticles)
		categories.POST("", authenticate, adminOnly, deps.Categories.CreateCategory)
		categories.PUT("/:id", authenticate, adminOnly, deps.Categories.UpdateCategory)
		categories.DELETE("/:id", authenticate, adminOnly, deps.Categories.DeleteCategory)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", deps.Tags.GetTags)
		tags.POST("", authenticate, adminOnly, deps.Tags.CreateTag)
	}

	users := api.Group("/users", authenticate)
	{
		users.GET("", deps.Users.GetAllUsers)
		users.GET("/profile", deps.Profile.GetProfile)
		users.PUT("/profile", deps.Profile.UpdateProfile)
		users.POST("/change-password", deps.Profile.ChangePassword)
		users.GET("/:id", deps.Users.GetUserByID)
	}

	api.POST("/uploads/image", authenticate, deps.Uploads.UploadImage)

	router.NoRoute(notFound(deps.StaticDir))
}

// notFound answers unknown /api paths with JSON. Other GETs fall back to
// the SPA bundle when one is configured.
func notFound(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || c.Request.Method != http.MethodGet || path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Route not found",
			})
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
