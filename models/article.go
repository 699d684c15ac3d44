package models

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	CategoryID    *int64        `json:"category_id"`
	AuthorID      uuid.UUID     `json:"author_id"`
	CoverImageURL *string       `json:"cover_image_url"`
	Status        ArticleStatus `json:"status"`
	PublishedAt   *time.Time    `json:"published_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Category *CategoryRef `json:"category,omitempty"`
	Author   *AuthorRef   `json:"author,omitempty"`
	Tags     []Tag        `json:"tags"`
}

type AuthorRef struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

// ArticleSummary is the compact shape used by related-article lists.
type ArticleSummary struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	CoverImageURL *string    `json:"cover_image_url"`
	PublishedAt   *time.Time `json:"published_at"`
}

type ArticleDetail struct {
	Article
	RelatedArticles []ArticleSummary `json:"related_articles"`
}

// ArticleFilter selects articles for list queries. Zero values mean "no filter".
type ArticleFilter struct {
	CategoryID int64
	TagID      int64
	AuthorID   uuid.UUID
	Search     string
	// Statuses defaults to published only when empty.
	Statuses []ArticleStatus
}

// ArticlePatch carries a partial update; nil fields are left unchanged.
type ArticlePatch struct {
	Title         *string
	Content       *string
	CategoryID    *int64
	ClearCategory bool
	CoverImageURL *string
	ClearCover    bool
	Status        *ArticleStatus
	PublishedAt   *time.Time
	// TagIDs replaces the tag set when non-nil.
	TagIDs []int64
}
