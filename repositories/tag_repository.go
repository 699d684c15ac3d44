package repositories

import (
	"context"

	"news-portal/models"
)

type TagRepository struct {
	db DBTX
}

func NewTagRepository(db DBTX) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.db.QueryRow(ctx, `INSERT INTO tags (name) VALUES ($1) RETURNING id, name`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, translateError(err)
	}
	return t, nil
}

// CountExisting returns how many of ids exist.
func (r *TagRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE id = ANY($1)`, ids).Scan(&count)
	return count, err
}
