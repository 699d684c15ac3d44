package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthController(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return assert.AnError })

	tests := []struct {
		name     string
		db       Pinger
		cache    Pinger
		status   int
		database string
		cacheOut string
	}{
		{"all up", up, up, http.StatusOK, "up", "up"},
		{"no cache configured", up, nil, http.StatusOK, "up", "disabled"},
		{"cache down is not fatal", up, down, http.StatusOK, "up", "down"},
		{"database down", down, up, http.StatusServiceUnavailable, "down", "up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(tt.db, tt.cache, discardLogger()).Health)

			w := doJSON(t, r, http.MethodGet, "/health", nil)

			assert.Equal(t, tt.status, w.Code)
			body := decode[map[string]string](t, w)
			assert.Equal(t, tt.database, body["database"])
			assert.Equal(t, tt.cacheOut, body["cache"])
		})
	}
}
