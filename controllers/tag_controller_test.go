package controllers

import (
	"net/http"
	"testing"

	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTagController(t *testing.T) {
	svc := &mockTagService{}
	ctrl := NewTagController(svc, discardLogger())
	r := gin.New()
	r.GET("/api/tags", ctrl.GetTags)
	r.POST("/api/tags", ctrl.CreateTag)

	svc.On("List", mock.Anything).Return([]models.Tag{{ID: 1, Name: "go"}}, nil)
	svc.On("Create", mock.Anything, models.TagRequest{Name: "Go"}).Return(nil, models.ConflictError("Tag already exists"))
	svc.On("Create", mock.Anything, models.TagRequest{Name: "Rust"}).Return(&models.Tag{ID: 2, Name: "rust"}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/tags", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tags", map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tags", map[string]string{"name": "Rust"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
