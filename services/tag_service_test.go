package services

import (
	"context"
	"testing"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTagService_Create(t *testing.T) {
	store := &mockTagStore{}
	svc := NewTagService(store)
	ctx := context.Background()

	store.On("Create", mock.Anything, "golang").Return(&models.Tag{ID: 1, Name: "golang"}, nil).Once()
	tag, err := svc.Create(ctx, models.TagRequest{Name: " GoLang "})
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Name)

	store.On("Create", mock.Anything, "golang").Return(nil, repositories.ErrDuplicate).Once()
	_, err = svc.Create(ctx, models.TagRequest{Name: "golang"})
	assert.Equal(t, models.KindConflict, models.KindOf(err))

	_, err = svc.Create(ctx, models.TagRequest{Name: ""})
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}
