package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"news-portal/models"
	"news-portal/repositories"
	"news-portal/utils"

	"github.com/google/uuid"
)

const relatedArticlesLimit = 3

type ArticleService struct {
	articles   ArticleStore
	categories CategoryStore
	tags       TagStore
	cache      repositories.ArticleListCache
	sanitizer  Sanitizer
	logger     *slog.Logger
	now        func() time.Time
}

func NewArticleService(
	articles ArticleStore,
	categories CategoryStore,
	tags TagStore,
	cache repositories.ArticleListCache,
	sanitizer Sanitizer,
	logger *slog.Logger,
) *ArticleService {
	if cache == nil {
		cache = repositories.NoopArticleCache{}
	}
	return &ArticleService{
		articles:   articles,
		categories: categories,
		tags:       tags,
		cache:      cache,
		sanitizer:  sanitizer,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns published articles matching every filter, newest first.
func (s *ArticleService) List(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.Page[models.Article], error) {
	f.Statuses = nil
	f.Search = strings.TrimSpace(f.Search)

	key := repositories.ArticleListKey(f, page, limit)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	result, err := s.page(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, result)
	return result, nil
}

// ListByAuthor shows an author's published articles. The author and admins
// also see drafts and archived articles and may filter by status.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID uuid.UUID, viewer *models.Principal, status string, page, limit int) (*models.Page[models.Article], error) {
	f := models.ArticleFilter{AuthorID: authorID}

	if viewer != nil && viewer.CanModify(authorID) {
		if status != "" {
			st := models.ArticleStatus(status)
			if !st.Valid() {
				return nil, models.ValidationError("Invalid status")
			}
			f.Statuses = []models.ArticleStatus{st}
		} else {
			f.Statuses = []models.ArticleStatus{models.StatusDraft, models.StatusPublished, models.StatusArchived}
		}
	}

	return s.page(ctx, f, page, limit)
}

// ListByCategory is the public article list of one category.
func (s *ArticleService) ListByCategory(ctx context.Context, categoryID int64, page, limit int) (*models.Page[models.Article], error) {
	return s.List(ctx, models.ArticleFilter{CategoryID: categoryID}, page, limit)
}

func (s *ArticleService) page(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.Page[models.Article], error) {
	items, total, err := s.articles.List(ctx, f, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, models.InternalError("failed to list articles", err)
	}
	return &models.Page[models.Article]{
		Items: items,
		Meta:  models.NewPaginationMeta(total, page, limit),
	}, nil
}

// Get returns the article with up to three related articles. Unpublished
// articles are only visible to their author and admins.
func (s *ArticleService) Get(ctx context.Context, id int64, viewer *models.Principal) (*models.ArticleDetail, error) {
	article, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished && (viewer == nil || !viewer.CanModify(article.AuthorID)) {
		return nil, models.NotFoundError("Article not found")
	}

	detail := &models.ArticleDetail{Article: *article, RelatedArticles: []models.ArticleSummary{}}
	if article.CategoryID == nil {
		return detail, nil
	}

	related, err := s.articles.Related(ctx, *article.CategoryID, article.ID, relatedArticlesLimit)
	if err != nil {
		return nil, models.InternalError("failed to load related articles", err)
	}
	detail.RelatedArticles = related
	return detail, nil
}

func (s *ArticleService) Create(ctx context.Context, req models.CreateArticleRequest, author models.Principal) (*models.Article, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, models.ValidationError("title is required")
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !req.Status.ValidOnCreate() {
		return nil, models.ValidationError("Invalid status")
	}

	categoryID, err := s.checkCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	tagIDs, err := s.checkTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:         req.Title,
		Content:       s.sanitizer.Sanitize(req.Content),
		CategoryID:    categoryID,
		AuthorID:      author.ID,
		CoverImageURL: emptyToNil(req.CoverImageURL),
		Status:        req.Status,
	}
	if article.Status == models.StatusPublished {
		now := s.now()
		article.PublishedAt = &now
	}

	if err := s.articles.Create(ctx, article, tagIDs); err != nil {
		return nil, models.InternalError("failed to create article", err)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("article created", "article_id", article.ID, "author_id", author.ID, "status", article.Status)

	return s.find(ctx, article.ID)
}

func (s *ArticleService) Update(ctx context.Context, id int64, req models.UpdateArticleRequest, requester models.Principal) (*models.Article, error) {
	if err := s.authorize(ctx, id, requester, "Not authorized to update this article"); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := models.ArticlePatch{}
	if req.CoverImageURL != nil {
		patch.CoverImageURL = emptyToNil(req.CoverImageURL)
		patch.ClearCover = patch.CoverImageURL == nil
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.ValidationError("title is required")
		}
		patch.Title = &title
	}
	if req.Content != nil {
		content := s.sanitizer.Sanitize(*req.Content)
		patch.Content = &content
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			patch.ClearCategory = true
		} else {
			categoryID, err := s.checkCategory(ctx, req.CategoryID)
			if err != nil {
				return nil, err
			}
			patch.CategoryID = categoryID
		}
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.ValidationError("Invalid status")
		}
		patch.Status = req.Status
		if *req.Status == models.StatusPublished {
			now := s.now()
			patch.PublishedAt = &now
		}
	}
	if req.Tags != nil {
		tagIDs, err := s.checkTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		patch.TagIDs = tagIDs
	}

	if err := s.articles.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError("Article not found")
		}
		return nil, models.InternalError("failed to update article", err)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("article updated", "article_id", id, "by", requester.ID)

	return s.find(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, id int64, requester models.Principal) error {
	if err := s.authorize(ctx, id, requester, "Not authorized to delete this article"); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.NotFoundError("Article not found")
		}
		return models.InternalError("failed to delete article", err)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("article deleted", "article_id", id, "by", requester.ID)
	return nil
}

func (s *ArticleService) find(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError("Article not found")
		}
		return nil, models.InternalError("failed to load article", err)
	}
	return article, nil
}

// authorize allows the author or an admin.
func (s *ArticleService) authorize(ctx context.Context, id int64, requester models.Principal, msg string) error {
	authorID, err := s.articles.AuthorOf(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.NotFoundError("Article not found")
		}
		return models.InternalError("failed to load article", err)
	}
	if !requester.CanModify(authorID) {
		return models.ForbiddenError(msg)
	}
	return nil
}

// checkCategory treats a missing or zero id as "no category".
func (s *ArticleService) checkCategory(ctx context.Context, id *int64) (*int64, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	exists, err := s.categories.Exists(ctx, *id)
	if err != nil {
		return nil, models.InternalError("failed to check category", err)
	}
	if !exists {
		return nil, models.ValidationError("Category not found")
	}
	return id, nil
}

// checkTags de-duplicates ids and verifies each one exists.
func (s *ArticleService) checkTags(ctx context.Context, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, models.ValidationError("Invalid tag id")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	if len(unique) == 0 {
		return unique, nil
	}
	count, err := s.tags.CountExisting(ctx, unique)
	if err != nil {
		return nil, models.InternalError("failed to check tags", err)
	}
	if count != len(unique) {
		return nil, models.ValidationError("Tag not found")
	}
	return unique, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
