package controllers

import (
	"net/http"
	"testing"

	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func articleRouter(svc *mockArticleService, principal *models.Principal) *gin.Engine {
	ctrl := NewArticleController(svc, discardLogger())
	r := gin.New()
	if principal != nil {
		r.Use(as(*principal))
	}
	r.GET("/api/articles", ctrl.GetArticles)
	r.GET("/api/articles/:id", ctrl.GetArticleByID)
	r.GET("/api/articles/author/:id", ctrl.GetArticlesByAuthor)
	r.POST("/api/articles", ctrl.CreateArticle)
	r.PUT("/api/articles/:id", ctrl.UpdateArticle)
	r.DELETE("/api/articles/:id", ctrl.DeleteArticle)
	return r
}

type pageBody struct {
	Success  bool                  `json:"success"`
	Data     []models.Article      `json:"data"`
	Meta     models.PaginationMeta `json:"meta"`
	Category *models.Category      `json:"category"`
}

func TestArticleController_GetArticlesFiltersAndPaginates(t *testing.T) {
	svc := &mockArticleService{}
	r := articleRouter(svc, nil)

	items := []models.Article{{ID: 11, Title: "a", Status: models.StatusPublished}, {ID: 12, Title: "b", Status: models.StatusPublished}}
	svc.On("List", mock.Anything, models.ArticleFilter{CategoryID: 3, Search: "go"}, 2, 5).
		Return(&models.Page[models.Article]{Items: items, Meta: models.NewPaginationMeta(7, 2, 5)}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/articles?category=3&search=go&page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[pageBody](t, w)
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, models.PaginationMeta{Total: 7, Page: 2, Limit: 5, TotalPages: 2}, body.Meta)
	assert.Nil(t, body.Category)
}

func TestArticleController_GetArticlesDefaultsAndBadFilters(t *testing.T) {
	svc := &mockArticleService{}
	r := articleRouter(svc, nil)

	author := uuid.New()
	svc.On("List", mock.Anything, models.ArticleFilter{TagID: 4, AuthorID: author}, 1, 10).
		Return(&models.Page[models.Article]{Items: []models.Article{}, Meta: models.NewPaginationMeta(0, 1, 10)}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/articles?tag=4&author="+author.String()+"&page=x&limit=-3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, q := range []string{"category=abc", "tag=0", "author=not-a-uuid"} {
		w := doJSON(t, r, http.MethodGet, "/api/articles?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNumberOfCalls(t, "List", 1)
}

func TestArticleController_GetArticleByID(t *testing.T) {
	svc := &mockArticleService{}
	r := articleRouter(svc, nil)

	detail := &models.ArticleDetail{
		Article:         models.Article{ID: 5, Title: "Hello", Status: models.StatusPublished},
		RelatedArticles: []models.ArticleSummary{{ID: 6, Title: "Next"}},
	}
	svc.On("Get", mock.Anything, int64(5), (*models.Principal)(nil)).Return(detail, nil)
	svc.On("Get", mock.Anything, int64(9), (*models.Principal)(nil)).Return(nil, models.NotFoundError("Article not found"))

	w := doJSON(t, r, http.MethodGet, "/api/articles/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Success bool                 `json:"success"`
		Data    models.ArticleDetail `json:"data"`
	}](t, w)
	assert.Equal(t, int64(5), body.Data.ID)
	assert.Len(t, body.Data.RelatedArticles, 1)

	w = doJSON(t, r, http.MethodGet, "/api/articles/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Article not found", decode[models.ErrorResponse](t, w).Message)

	w = doJSON(t, r, http.MethodGet, "/api/articles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticleController_GetArticlesByAuthorPassesViewer(t *testing.T) {
	svc := &mockArticleService{}
	author := models.Principal{ID: uuid.New(), Role: models.RoleUser}
	r := articleRouter(svc, &author)

	svc.On("ListByAuthor", mock.Anything, author.ID, &author, "draft", 1, 10).
		Return(&models.Page[models.Article]{Items: []models.Article{{ID: 1, Status: models.StatusDraft}}, Meta: models.NewPaginationMeta(1, 1, 10)}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/articles/author/"+author.ID.String()+"?status=draft", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[pageBody](t, w).Data, 1)
}

func TestArticleController_CreateArticle(t *testing.T) {
	svc := &mockArticleService{}
	author := models.Principal{ID: uuid.New(), Role: models.RoleUser}
	r := articleRouter(svc, &author)

	category := int64(2)
	req := models.CreateArticleRequest{Title: "Hello", Content: "<p>World</p>", CategoryID: &category, Tags: []int64{1, 2}, Status: models.StatusPublished}
	svc.On("Create", mock.Anything, req, author).
		Return(&models.Article{ID: 1, Title: "Hello", AuthorID: author.ID, Status: models.StatusPublished}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/articles", req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Article created successfully", decode[models.Response](t, w).Message)

	w = doJSON(t, r, http.MethodPost, "/api/articles", map[string]string{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", decode[models.ErrorResponse](t, w).Message)
}

func TestArticleController_UpdateForbidden(t *testing.T) {
	svc := &mockArticleService{}
	stranger := models.Principal{ID: uuid.New(), Role: models.RoleUser}
	r := articleRouter(svc, &stranger)

	title := "Changed"
	svc.On("Update", mock.Anything, int64(4), models.UpdateArticleRequest{Title: &title}, stranger).
		Return(nil, models.ForbiddenError("You can only update your own articles"))

	w := doJSON(t, r, http.MethodPut, "/api/articles/4", map[string]string{"title": "Changed"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestArticleController_Delete(t *testing.T) {
	svc := &mockArticleService{}
	admin := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	r := articleRouter(svc, &admin)

	svc.On("Delete", mock.Anything, int64(4), admin).Return(nil)
	svc.On("Delete", mock.Anything, int64(5), admin).Return(models.InternalError("failed to delete article", assert.AnError))

	w := doJSON(t, r, http.MethodDelete, "/api/articles/4", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/articles/5", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode[models.ErrorResponse](t, w).Message)
}
