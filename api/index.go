package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"news-portal/app"
	"news-portal/config"
	"news-portal/models"
	"news-portal/utils"

	"github.com/gin-gonic/gin"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.LoadConfig()
		if err != nil {
			initErr = err
			return
		}
		// Serverless cold starts must not race each other on schema changes.
		cfg.RunMigrations = false

		logger, err := utils.NewLogger(cfg.LogLevel, "production")
		if err != nil {
			initErr = err
			return
		}

		application, initErr = app.New(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("failed to initialize app", "error", initErr)
		}
	})
}

// Handler is the Vercel entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Success: false, Message: "Service unavailable"})
		return
	}
	application.Router.ServeHTTP(w, r)
}
