package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"news-portal/models"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const articleListKeyPrefix = "articles_list_"

// ArticleListCache caches public article list pages.
type ArticleListCache interface {
	Get(ctx context.Context, key string) (*models.Page[models.Article], bool)
	Set(ctx context.Context, key string, page *models.Page[models.Article])
	Invalidate(ctx context.Context)
}

// ArticleListKey normalizes a list query into a cache key.
func ArticleListKey(f models.ArticleFilter, page, limit int) string {
	return fmt.Sprintf("%sc%d_t%d_a%s_s%q_p%d_l%d",
		articleListKeyPrefix, f.CategoryID, f.TagID, f.AuthorID, f.Search, page, limit)
}

type RedisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisArticleCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisArticleCache {
	return &RedisArticleCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisArticleCache) Get(ctx context.Context, key string) (*models.Page[models.Article], bool) {
	cached, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("article cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var page models.Page[models.Article]
	if err := json.Unmarshal(cached, &page); err != nil {
		c.logger.Warn("article cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &page, true
}

func (c *RedisArticleCache) Set(ctx context.Context, key string, page *models.Page[models.Article]) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("article cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached list page.
func (c *RedisArticleCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, articleListKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("article cache invalidation failed", "error", err)
	}
}

// MemoryArticleCache keeps list pages in process. It is the fallback
// when redis is not configured, so invalidation only reaches this instance.
type MemoryArticleCache struct {
	pages *lru.LRU[string, *models.Page[models.Article]]
}

func NewMemoryArticleCache(size int, ttl time.Duration) *MemoryArticleCache {
	return &MemoryArticleCache{pages: lru.NewLRU[string, *models.Page[models.Article]](size, nil, ttl)}
}

func (c *MemoryArticleCache) Get(_ context.Context, key string) (*models.Page[models.Article], bool) {
	return c.pages.Get(key)
}

func (c *MemoryArticleCache) Set(_ context.Context, key string, page *models.Page[models.Article]) {
	c.pages.Add(key, page)
}

func (c *MemoryArticleCache) Invalidate(context.Context) {
	c.pages.Purge()
}

// NoopArticleCache disables list caching.
type NoopArticleCache struct{}

func (NoopArticleCache) Get(context.Context, string) (*models.Page[models.Article], bool) {
	return nil, false
}

func (NoopArticleCache) Set(context.Context, string, *models.Page[models.Article]) {}

func (NoopArticleCache) Invalidate(context.Context) {}
