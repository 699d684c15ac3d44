package services

import (
	"context"
	"io"
	"log/slog"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Create(ctx context.Context, p *models.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfileStore) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProfileStore) ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	args := m.Called(ctx, role)
	p, _ := args.Get(0).([]models.Profile)
	return p, args.Error(1)
}

func (m *mockProfileStore) Update(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

type mockIdentityProvider struct{ mock.Mock }

func (m *mockIdentityProvider) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	args := m.Called(ctx, email, password)
	i, _ := args.Get(0).(*models.Identity)
	return i, args.Error(1)
}

func (m *mockIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	args := m.Called(ctx, email, password)
	i, _ := args.Get(0).(*models.Identity)
	return i, args.Error(1)
}

func (m *mockIdentityProvider) SignOut(ctx context.Context, sessionToken string) error {
	return m.Called(ctx, sessionToken).Error(0)
}

func (m *mockIdentityProvider) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	return m.Called(ctx, id, password).Error(0)
}

func (m *mockIdentityProvider) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockArticleStore struct{ mock.Mock }

func (m *mockArticleStore) List(ctx context.Context, f models.ArticleFilter, limit, offset int) ([]models.Article, int, error) {
	args := m.Called(ctx, f, limit, offset)
	a, _ := args.Get(0).([]models.Article)
	return a, args.Int(1), args.Error(2)
}

func (m *mockArticleStore) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Article)
	return a, args.Error(1)
}

func (m *mockArticleStore) AuthorOf(ctx context.Context, id int64) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockArticleStore) Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]models.ArticleSummary, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	r, _ := args.Get(0).([]models.ArticleSummary)
	return r, args.Error(1)
}

func (m *mockArticleStore) Create(ctx context.Context, a *models.Article, tagIDs []int64) error {
	return m.Called(ctx, a, tagIDs).Error(0)
}

func (m *mockArticleStore) Update(ctx context.Context, id int64, patch models.ArticlePatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockArticleStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryStore) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	args := m.Called(ctx, name, description)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryStore) Update(ctx context.Context, id int64, name string, description *string) (*models.Category, error) {
	args := m.Called(ctx, id, name, description)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryStore) CountArticles(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockTagStore struct{ mock.Mock }

func (m *mockTagStore) List(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]models.Tag)
	return t, args.Error(1)
}

func (m *mockTagStore) Create(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	t, _ := args.Get(0).(*models.Tag)
	return t, args.Error(1)
}

func (m *mockTagStore) CountExisting(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	return m.Called(ctx, email, fullName).Error(0)
}

func (m *mockNotifier) SendPasswordChanged(ctx context.Context, email, fullName string) error {
	return m.Called(ctx, email, fullName).Error(0)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	args := m.Called(ctx, file, filename, folder)
	return args.String(0), args.String(1), args.Error(2)
}

// spyCache records invalidations and never hits.
type spyCache struct {
	invalidated int
	sets        int
}

func (c *spyCache) Get(context.Context, string) (*models.Page[models.Article], bool) {
	return nil, false
}
func (c *spyCache) Set(context.Context, string, *models.Page[models.Article]) { c.sets++ }
func (c *spyCache) Invalidate(context.Context)                                { c.invalidated++ }

var _ repositories.ArticleListCache = (*spyCache)(nil)

// passSanitizer returns input unchanged.
type passSanitizer struct{}

func (passSanitizer) Sanitize(s string) string { return s }

type mockIdentityStore struct{ mock.Mock }

func (m *mockIdentityStore) Create(ctx context.Context, id uuid.UUID, email, passwordHash string) error {
	return m.Called(ctx, id, email, passwordHash).Error(0)
}

func (m *mockIdentityStore) FindByEmail(ctx context.Context, email string) (*repositories.StoredIdentity, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).(*repositories.StoredIdentity)
	return s, args.Error(1)
}

func (m *mockIdentityStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockIdentityStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
