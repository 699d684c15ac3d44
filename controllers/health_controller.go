package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	db     Pinger
	cache  Pinger
	logger *slog.Logger
}

// NewHealthController accepts a nil cache when Redis is not configured.
func NewHealthController(db, cache Pinger, logger *slog.Logger) *HealthController {
	return &HealthController{db: db, cache: cache, logger: logger}
}

// @Summary Health check
// @Description Liveness plus database reachability. Redis is reported but never fails the check.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "up"}
	status := http.StatusOK

	if err := ctrl.db.Ping(ctx); err != nil {
		ctrl.logger.Error("health check: database unreachable", "error", err)
		body["status"] = "degraded"
		body["database"] = "down"
		status = http.StatusServiceUnavailable
	}

	switch {
	case ctrl.cache == nil:
		body["cache"] = "disabled"
	case ctrl.cache.Ping(ctx) != nil:
		body["cache"] = "down"
	default:
		body["cache"] = "up"
	}

	c.JSON(status, body)
}
