package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"news-portal/controllers"
	"news-portal/middleware"
	"news-portal/models"
	"news-portal/repositories"
	"news-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type profileMap map[uuid.UUID]*models.Profile

func (m profileMap) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if p, ok := m[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

type stubTags struct{ created []string }

func (s *stubTags) List(context.Context) ([]models.Tag, error) {
	return []models.Tag{{ID: 1, Name: "breaking"}}, nil
}

func (s *stubTags) Create(_ context.Context, req models.TagRequest) (*models.Tag, error) {
	s.created = append(s.created, req.Name)
	return &models.Tag{ID: 2, Name: strings.ToLower(req.Name)}, nil
}

type fixture struct {
	router *gin.Engine
	tokens *services.TokenService
	tags   *stubTags
	admin  models.Principal
	writer models.Principal
}

func newFixture(t *testing.T, staticDir string, dbErr error) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := services.NewTokenService("test-secret", time.Hour)

	admin := models.Principal{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
	writer := models.Principal{ID: uuid.New(), Email: "writer@example.com", Role: models.RoleUser}
	profiles := profileMap{
		admin.ID:  {ID: admin.ID, Username: "admin", Role: models.RoleAdmin},
		writer.ID: {ID: writer.ID, Username: "writer", Role: models.RoleUser},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	reg := prometheus.NewRegistry()
	tags := &stubTags{}
	db := controllers.PingFunc(func(context.Context) error { return dbErr })

	router := gin.New()
	SetupRoutes(router, Dependencies{
		Logger:         logger,
		Authenticator:  middleware.NewAuthenticator(tokens, profiles, logger),
		RateLimiter:    middleware.NewRateLimiter(ctx, 0.001, 1),
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StaticDir:      staticDir,

		// Guarded routes below never reach these services.
		Auth:       controllers.NewAuthController(nil, logger),
		Articles:   controllers.NewArticleController(nil, logger),
		Categories: controllers.NewCategoryController(nil, logger),
		Tags:       controllers.NewTagController(tags, logger),
		Users:      controllers.NewUserController(nil, logger),
		Profile:    controllers.NewProfileController(nil, logger),
		Uploads:    controllers.NewUploadController(nil, logger),
		Health:     controllers.NewHealthController(db, nil, logger),
	})

	return &fixture{router: router, tokens: tokens, tags: tags, admin: admin, writer: writer}
}

func (f *fixture) do(t *testing.T, method, path string, as *models.Principal, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		token, err := f.tokens.Generate(*as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t, "", nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/articles"},
		{http.MethodPut, "/api/articles/1"},
		{http.MethodDelete, "/api/articles/1"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/categories/1"},
		{http.MethodDelete, "/api/categories/1"},
		{http.MethodPost, "/api/tags"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPost, "/api/users/change-password"},
		{http.MethodGet, "/api/users/" + uuid.NewString()},
		{http.MethodPost, "/api/uploads/image"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, nil, "")

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, "Authorization header required", body.Message)
		})
	}
}

func TestAdminRoutesRejectUsers(t *testing.T) {
	f := newFixture(t, "", nil)

	for _, tt := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/categories/1"},
		{http.MethodDelete, "/api/categories/1"},
		{http.MethodPost, "/api/tags"},
	} {
		w := f.do(t, tt.method, tt.path, &f.writer, `{"name":"x"}`)
		assert.Equal(t, http.StatusForbidden, w.Code, tt.path)
	}
	assert.Empty(t, f.tags.created)
}

func TestAdminCreatesTag(t *testing.T) {
	f := newFixture(t, "", nil)

	w := f.do(t, http.MethodPost, "/api/tags", &f.admin, `{"name":"Breaking"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"Breaking"}, f.tags.created)
}

func TestPublicTagList(t *testing.T) {
	f := newFixture(t, "", nil)

	w := f.do(t, http.MethodGet, "/api/tags", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "breaking")
}

func TestTokenForDeletedProfileIsRejected(t *testing.T) {
	f := newFixture(t, "", nil)
	ghost := models.Principal{ID: uuid.New(), Email: "ghost@example.com", Role: models.RoleAdmin}

	w := f.do(t, http.MethodPost, "/api/tags", &ghost, `{"name":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	f := newFixture(t, "", nil)

	first := f.do(t, http.MethodPost, "/api/auth/login", nil, `{}`)
	second := f.do(t, http.MethodPost, "/api/auth/login", nil, `{}`)

	assert.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestHealth(t *testing.T) {
	w := newFixture(t, "", nil).do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = newFixture(t, "", errors.New("connection refused")).do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, "", nil)
	f.do(t, http.MethodGet, "/api/tags", nil, "")

	w := f.do(t, http.MethodGet, "/metrics", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "newsportal_http_requests_total")
}

func TestUnknownAPIRouteIsJSON(t *testing.T) {
	f := newFixture(t, t.TempDir(), nil)

	w := f.do(t, http.MethodGet, "/api/nope", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	f := newFixture(t, dir, nil)

	w := f.do(t, http.MethodGet, "/app.js", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console.log")

	w = f.do(t, http.MethodGet, "/articles/42", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")

	w = f.do(t, http.MethodGet, "/../../etc/passwd", nil, "")
	assert.NotContains(t, w.Body.String(), "root:")
}

func TestNoStaticDirGivesJSON404(t *testing.T) {
	w := newFixture(t, "", nil).do(t, http.MethodGet, "/somewhere", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
