package repositories

import (
	"context"
	"fmt"
	"strings"

	"news-portal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const articleSelect = `
	SELECT a.id, a.title, a.content, a.category_id, a.author_id, a.cover_image_url,
	       a.status, a.published_at, a.created_at, a.updated_at,
	       c.name, p.username, p.full_name, p.avatar_url
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id
	JOIN profiles p ON p.id = a.author_id`

const articleOrder = ` ORDER BY a.published_at DESC NULLS LAST, a.created_at DESC, a.id DESC`

type ArticleRepository struct {
	db DBTX
}

func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	a := &models.Article{}
	author := &models.AuthorRef{}
	var categoryName *string

	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.CategoryID, &a.AuthorID, &a.CoverImageURL,
		&a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		&categoryName, &author.Username, &author.FullName, &author.AvatarURL,
	)
	if err != nil {
		return nil, translateError(err)
	}

	author.ID = a.AuthorID
	a.Author = author
	if a.CategoryID != nil && categoryName != nil {
		a.Category = &models.CategoryRef{ID: *a.CategoryID, Name: *categoryName}
	}
	a.Tags = []models.Tag{}
	return a, nil
}

// articleWhere renders the filter as a WHERE clause with positional args.
func articleWhere(f models.ArticleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	statuses := []string{string(models.StatusPublished)}
	if len(f.Statuses) > 0 {
		statuses = statuses[:0]
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
	}
	add("a.status = ANY($%d)", statuses)

	if f.CategoryID > 0 {
		add("a.category_id = $%d", f.CategoryID)
	}
	if f.AuthorID != uuid.Nil {
		add("a.author_id = $%d", f.AuthorID)
	}
	if f.TagID > 0 {
		add("EXISTS (SELECT 1 FROM article_tags at WHERE at.article_id = a.id AND at.tag_id = $%d)", f.TagID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		add("a.title ILIKE $%d", "%"+escapeLike(search)+"%")
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns one page of matching articles and the total match count.
func (r *ArticleRepository) List(ctx context.Context, f models.ArticleFilter, limit, offset int) ([]models.Article, int, error) {
	where, args := articleWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := articleSelect + where + articleOrder + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTags(ctx, articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	a, err := scanArticle(r.db.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, err
	}
	one := []models.Article{*a}
	if err := r.attachTags(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// AuthorOf returns the author id of an article.
func (r *ArticleRepository) AuthorOf(ctx context.Context, id int64) (uuid.UUID, error) {
	var authorID uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT author_id FROM articles WHERE id = $1`, id).Scan(&authorID); err != nil {
		return uuid.Nil, translateError(err)
	}
	return authorID, nil
}

// Related lists published articles sharing a category, newest first.
func (r *ArticleRepository) Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]models.ArticleSummary, error) {
	query := `
		SELECT id, title, cover_image_url, published_at
		FROM articles
		WHERE category_id = $1 AND id <> $2 AND status = $3
		ORDER BY published_at DESC NULLS LAST, id DESC
		LIMIT $4
	`
	rows, err := r.db.Query(ctx, query, categoryID, excludeID, models.StatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	related := []models.ArticleSummary{}
	for rows.Next() {
		var s models.ArticleSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CoverImageURL, &s.PublishedAt); err != nil {
			return nil, err
		}
		related = append(related, s)
	}
	return related, rows.Err()
}

// Create inserts the article and its tags in one transaction, filling in
// the generated id and timestamps.
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article, tagIDs []int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO articles (title, content, category_id, author_id, cover_image_url, status, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			a.Title, a.Content, a.CategoryID, a.AuthorID, a.CoverImageURL, a.Status, a.PublishedAt,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return translateError(err)
		}
		return insertTags(ctx, tx, a.ID, tagIDs)
	})
}

// Update applies a partial patch; when patch.TagIDs is non-nil the tag set
// is replaced inside the same transaction.
func (r *ArticleRepository) Update(ctx context.Context, id int64, patch models.ArticlePatch) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.ClearCategory {
		sets = append(sets, "category_id = NULL")
	} else if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}
	if patch.ClearCover {
		sets = append(sets, "cover_image_url = NULL")
	} else if patch.CoverImageURL != nil {
		set("cover_image_url", *patch.CoverImageURL)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.PublishedAt != nil {
		set("published_at", *patch.PublishedAt)
	}

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE articles SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
		if err != nil {
			return translateError(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if patch.TagIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, id); err != nil {
			return err
		}
		return insertTags(ctx, tx, id, patch.TagIDs)
	})
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertTags(ctx context.Context, q Querier, articleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	_, err := q.Exec(ctx, query, articleID, tagIDs)
	return translateError(err)
}

// attachTags loads tags for every article in one query.
func (r *ArticleRepository) attachTags(ctx context.Context, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]int64, len(articles))
	index := make(map[int64]int, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
		index[a.ID] = i
	}

	query := `
		SELECT at.article_id, t.id, t.name
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID int64
			t         models.Tag
		)
		if err := rows.Scan(&articleID, &t.ID, &t.Name); err != nil {
			return err
		}
		if i, ok := index[articleID]; ok {
			articles[i].Tags = append(articles[i].Tags, t)
		}
	}
	return rows.Err()
}
