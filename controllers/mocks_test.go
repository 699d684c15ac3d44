package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"news-portal/middleware"
	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	ConfigureBinding()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// as attaches p the way Authenticate would.
func as(p models.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetPrincipal(c, p)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, principal models.Principal) (*models.PublicUser, error) {
	args := m.Called(ctx, principal)
	res, _ := args.Get(0).(*models.PublicUser)
	return res, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionToken string) error {
	return m.Called(ctx, sessionToken).Error(0)
}

type mockArticleService struct{ mock.Mock }

func (m *mockArticleService) List(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.Page[models.Article], error) {
	args := m.Called(ctx, f, page, limit)
	res, _ := args.Get(0).(*models.Page[models.Article])
	return res, args.Error(1)
}

func (m *mockArticleService) ListByAuthor(ctx context.Context, authorID uuid.UUID, viewer *models.Principal, status string, page, limit int) (*models.Page[models.Article], error) {
	args := m.Called(ctx, authorID, viewer, status, page, limit)
	res, _ := args.Get(0).(*models.Page[models.Article])
	return res, args.Error(1)
}

func (m *mockArticleService) Get(ctx context.Context, id int64, viewer *models.Principal) (*models.ArticleDetail, error) {
	args := m.Called(ctx, id, viewer)
	res, _ := args.Get(0).(*models.ArticleDetail)
	return res, args.Error(1)
}

func (m *mockArticleService) Create(ctx context.Context, req models.CreateArticleRequest, author models.Principal) (*models.Article, error) {
	args := m.Called(ctx, req, author)
	res, _ := args.Get(0).(*models.Article)
	return res, args.Error(1)
}

func (m *mockArticleService) Update(ctx context.Context, id int64, req models.UpdateArticleRequest, requester models.Principal) (*models.Article, error) {
	args := m.Called(ctx, id, req, requester)
	res, _ := args.Get(0).(*models.Article)
	return res, args.Error(1)
}

func (m *mockArticleService) Delete(ctx context.Context, id int64, requester models.Principal) error {
	return m.Called(ctx, id, requester).Error(0)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.Category)
	return res, args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.Category)
	return res, args.Error(1)
}

func (m *mockCategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.Category)
	return res, args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*models.Category)
	return res, args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryService) ListArticles(ctx context.Context, id int64, page, limit int) (*models.Category, *models.Page[models.Article], error) {
	args := m.Called(ctx, id, page, limit)
	cat, _ := args.Get(0).(*models.Category)
	res, _ := args.Get(1).(*models.Page[models.Article])
	return cat, res, args.Error(2)
}

type mockTagService struct{ mock.Mock }

func (m *mockTagService) List(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.Tag)
	return res, args.Error(1)
}

func (m *mockTagService) Create(ctx context.Context, req models.TagRequest) (*models.Tag, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.Tag)
	return res, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.Profile)
	return res, args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.Profile)
	return res, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*models.Profile)
	return res, args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, principal models.Principal, req models.ChangePasswordRequest) error {
	return m.Called(ctx, principal, req).Error(0)
}

type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) UploadImage(ctx context.Context, header *multipart.FileHeader, kind string) (*models.UploadResult, error) {
	args := m.Called(ctx, header, kind)
	res, _ := args.Get(0).(*models.UploadResult)
	return res, args.Error(1)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
