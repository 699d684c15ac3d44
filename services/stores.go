package services

import (
	"context"
	"io"

	"news-portal/models"

	"github.com/google/uuid"
)

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error)
}

type ArticleStore interface {
	List(ctx context.Context, f models.ArticleFilter, limit, offset int) ([]models.Article, int, error)
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	AuthorOf(ctx context.Context, id int64) (uuid.UUID, error)
	Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]models.ArticleSummary, error)
	Create(ctx context.Context, a *models.Article, tagIDs []int64) error
	Update(ctx context.Context, id int64, patch models.ArticlePatch) error
	Delete(ctx context.Context, id int64) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, name string, description *string) (*models.Category, error)
	Update(ctx context.Context, id int64, name string, description *string) (*models.Category, error)
	CountArticles(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type TagStore interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

// Notifier sends account mails. Implementations must be safe to call
// when mail is not configured.
type Notifier interface {
	SendWelcome(ctx context.Context, email, fullName string) error
	SendPasswordChanged(ctx context.Context, email, fullName string) error
}

// Sanitizer cleans user supplied HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// ImageUploader stores an image and returns its public URL and id.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (url, publicID string, err error)
}

type noopNotifier struct{}

func (noopNotifier) SendWelcome(context.Context, string, string) error         { return nil }
func (noopNotifier) SendPasswordChanged(context.Context, string, string) error { return nil }

// NoopNotifier discards every notification.
var NoopNotifier Notifier = noopNotifier{}
