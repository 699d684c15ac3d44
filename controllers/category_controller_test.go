package controllers

import (
	"net/http"
	"testing"

	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func categoryRouter(svc *mockCategoryService) *gin.Engine {
	ctrl := NewCategoryController(svc, discardLogger())
	r := gin.New()
	r.GET("/api/categories", ctrl.GetCategories)
	r.GET("/api/categories/:id", ctrl.GetCategoryByID)
	r.GET("/api/categories/:id/articles", ctrl.GetCategoryArticles)
	r.POST("/api/categories", ctrl.CreateCategory)
	r.PUT("/api/categories/:id", ctrl.UpdateCategory)
	r.DELETE("/api/categories/:id", ctrl.DeleteCategory)
	return r
}

func TestCategoryController_List(t *testing.T) {
	svc := &mockCategoryService{}
	r := categoryRouter(svc)

	svc.On("List", mock.Anything).Return([]models.Category{{ID: 1, Name: "Politics"}, {ID: 2, Name: "Tech"}}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Data []models.Category `json:"data"`
	}](t, w)
	assert.Len(t, body.Data, 2)
}

func TestCategoryController_ArticlesIncludesCategory(t *testing.T) {
	svc := &mockCategoryService{}
	r := categoryRouter(svc)

	cat := &models.Category{ID: 3, Name: "Tech"}
	svc.On("ListArticles", mock.Anything, int64(3), 1, 10).
		Return(cat, &models.Page[models.Article]{Items: []models.Article{{ID: 1}}, Meta: models.NewPaginationMeta(1, 1, 10)}, nil)
	svc.On("ListArticles", mock.Anything, int64(4), 1, 10).
		Return(nil, nil, models.NotFoundError("Category not found"))

	w := doJSON(t, r, http.MethodGet, "/api/categories/3/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[pageBody](t, w)
	require.NotNil(t, body.Category)
	assert.Equal(t, "Tech", body.Category.Name)
	assert.Equal(t, 1, body.Meta.TotalPages)

	w = doJSON(t, r, http.MethodGet, "/api/categories/4/articles", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryController_Create(t *testing.T) {
	svc := &mockCategoryService{}
	r := categoryRouter(svc)

	svc.On("Create", mock.Anything, models.CategoryRequest{Name: "Tech"}).Return(&models.Category{ID: 9, Name: "Tech"}, nil)
	svc.On("Create", mock.Anything, models.CategoryRequest{Name: "Dup"}).Return(nil, models.ConflictError("Category name already exists"))

	w := doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{"name": "Tech"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{"name": "Dup"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name is required", decode[models.ErrorResponse](t, w).Message)
}

func TestCategoryController_DeleteInUse(t *testing.T) {
	svc := &mockCategoryService{}
	r := categoryRouter(svc)

	svc.On("Delete", mock.Anything, int64(3)).Return(models.ValidationError("Cannot delete category that is used in articles"))
	svc.On("Delete", mock.Anything, int64(4)).Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/categories/3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete category that is used in articles", decode[models.ErrorResponse](t, w).Message)

	w = doJSON(t, r, http.MethodDelete, "/api/categories/4", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category deleted successfully", decode[models.Response](t, w).Message)
}

func TestCategoryController_UpdateInvalidID(t *testing.T) {
	r := categoryRouter(&mockCategoryService{})

	w := doJSON(t, r, http.MethodPut, "/api/categories/zero", map[string]string{"name": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category ID", decode[models.ErrorResponse](t, w).Message)
}
