package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"news-portal/config"
	"news-portal/controllers"
	"news-portal/libs"
	"news-portal/middleware"
	"news-portal/repositories"
	"news-portal/routes"
	"news-portal/services"
	"news-portal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const memoryCachePages = 512

// App holds the wired application. Build it with New and release it with
// Close.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Router *gin.Engine

	Profiles *repositories.ProfileRepository
	Seeder   *services.SeedService

	cancel context.CancelFunc
}

// New connects to the backing stores and wires every layer. Migrations
// run first when cfg.RunMigrations is set.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RunMigrations {
		if err := config.RunMigrations(cfg, logger); err != nil {
			return nil, err
		}
	}

	pool, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	identities, err := newIdentityProvider(cfg, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	uploader, err := newUploader(cfg, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	rdb := config.NewRedis(ctx, cfg, logger)
	var cache repositories.ArticleListCache
	switch {
	case cfg.CacheTTL <= 0:
		cache = repositories.NoopArticleCache{}
	case rdb != nil:
		cache = repositories.NewRedisArticleCache(rdb, cfg.CacheTTL, logger)
	default:
		cache = repositories.NewMemoryArticleCache(memoryCachePages, cfg.CacheTTL)
	}

	notifier := services.NoopNotifier
	if cfg.SMTPEnabled() {
		notifier = libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, logger)
	} else {
		logger.Info("smtp not configured, notification mail disabled")
	}

	profileRepo := repositories.NewProfileRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	tagRepo := repositories.NewTagRepository(pool)
	articleRepo := repositories.NewArticleRepository(pool)
	sanitizer := libs.NewHTMLSanitizer()

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(profileRepo, identities, tokens, notifier, logger)
	articleService := services.NewArticleService(articleRepo, categoryRepo, tagRepo, cache, sanitizer, logger)
	categoryService := services.NewCategoryService(categoryRepo, articleService, cache, logger)
	tagService := services.NewTagService(tagRepo)
	userService := services.NewUserService(profileRepo, identities, sanitizer, notifier, logger)
	uploadService := services.NewUploadService(uploader, cfg.MaxUploadSize)

	bgCtx, cancel := context.WithCancel(context.Background())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var limiter *middleware.RateLimiter
	if cfg.AuthRateLimit > 0 {
		limiter = middleware.NewRateLimiter(bgCtx, cfg.AuthRateLimit, cfg.AuthRateBurst)
	}

	var cachePinger controllers.Pinger
	if rdb != nil {
		cachePinger = controllers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize

	routes.SetupRoutes(router, routes.Dependencies{
		Logger:         logger,
		Authenticator:  middleware.NewAuthenticator(tokens, profileRepo, logger),
		RateLimiter:    limiter,
		Metrics:        middleware.NewMetrics(registry),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		OriginURL:      cfg.OriginURL,
		StaticDir:      cfg.StaticDir,

		Auth:       controllers.NewAuthController(authService, logger),
		Articles:   controllers.NewArticleController(articleService, logger),
		Categories: controllers.NewCategoryController(categoryService, logger),
		Tags:       controllers.NewTagController(tagService, logger),
		Users:      controllers.NewUserController(userService, logger),
		Profile:    controllers.NewProfileController(userService, logger),
		Uploads:    controllers.NewUploadController(uploadService, logger),
		Health:     controllers.NewHealthController(pool, cachePinger, logger),
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       pool,
		Redis:    rdb,
		Router:   router,
		Profiles: profileRepo,
		Seeder:   services.NewSeedService(profileRepo, identities, categoryRepo, tagRepo, logger),
		cancel:   cancel,
	}, nil
}

func newIdentityProvider(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (services.IdentityProvider, error) {
	switch cfg.AuthProvider {
	case "kratos":
		logger.Info("using kratos identity provider", "public_url", cfg.KratosPublicURL)
		return libs.NewKratosIdentityProvider(cfg.KratosPublicURL, cfg.KratosAdminURL, logger)
	case "local":
		return services.NewLocalIdentityProvider(repositories.NewIdentityRepository(pool), utils.NewPasswordHasher()), nil
	}
	return nil, fmt.Errorf("unsupported auth provider %q", cfg.AuthProvider)
}

// newUploader returns a nil uploader when Cloudinary is not configured;
// the upload endpoint then answers 503.
func newUploader(cfg *config.Config, logger *slog.Logger) (services.ImageUploader, error) {
	if !cfg.CloudinaryEnabled() {
		logger.Info("cloudinary not configured, image uploads disabled")
		return nil, nil
	}
	uploader, err := libs.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return uploader, nil
}

// Serve listens on the configured port until ctx is cancelled, then
// drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			"port", a.Config.Port,
			"env", a.Config.AppEnv,
			"swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", a.Config.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	a.cancel()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", "error", err)
		}
	}
	a.DB.Close()
}
