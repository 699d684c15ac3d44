package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"news-portal/models"
	"news-portal/repositories"
)

const categoryInUseMessage = "Cannot delete category that is used in articles"

// ArticleLister lists the public articles of one category.
type ArticleLister interface {
	ListByCategory(ctx context.Context, categoryID int64, page, limit int) (*models.Page[models.Article], error)
}

type CategoryService struct {
	categories CategoryStore
	articles   ArticleLister
	cache      repositories.ArticleListCache
	logger     *slog.Logger
}

func NewCategoryService(categories CategoryStore, articles ArticleLister, cache repositories.ArticleListCache, logger *slog.Logger) *CategoryService {
	if cache == nil {
		cache = repositories.NoopArticleCache{}
	}
	return &CategoryService{categories: categories, articles: articles, cache: cache, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, models.InternalError("failed to list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError("Category not found")
		}
		return nil, models.InternalError("failed to load category", err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, models.ValidationError("Category name is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categories.Create(ctx, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("Category name already exists")
		}
		return nil, models.InternalError("failed to create category", err)
	}
	s.logger.Info("category created", "category_id", category.ID)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, models.ValidationError("Category name is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categories.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, models.NotFoundError("Category not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, models.ConflictError("Category name already exists")
		}
		return nil, models.InternalError("failed to update category", err)
	}
	// embedded category names in cached article lists are now stale
	s.cache.Invalidate(ctx)
	return category, nil
}

// Delete refuses to remove a category that any article still references.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	count, err := s.categories.CountArticles(ctx, id)
	if err != nil {
		return models.InternalError("failed to check category usage", err)
	}
	if count > 0 {
		return models.ValidationError(categoryInUseMessage)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return models.NotFoundError("Category not found")
		case errors.Is(err, repositories.ErrForeignKey):
			return models.ValidationError(categoryInUseMessage)
		}
		return models.InternalError("failed to delete category", err)
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// ListArticles returns the category together with a page of its published articles.
func (s *CategoryService) ListArticles(ctx context.Context, id int64, page, limit int) (*models.Category, *models.Page[models.Article], error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	articles, err := s.articles.ListByCategory(ctx, id, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return category, articles, nil
}
