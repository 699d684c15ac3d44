package models

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ValidOnCreate reports whether s may be used for a new article.
func (s ArticleStatus) ValidOnCreate() bool {
	return s == StatusDraft || s == StatusPublished
}

// CanTransition reports whether an article may move from s to next.
// Every move among the three known states is allowed, draft -> archived included.
func (s ArticleStatus) CanTransition(next ArticleStatus) bool {
	return s.Valid() && next.Valid()
}
