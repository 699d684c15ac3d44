package repositories

import (
	"context"

	"news-portal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, username, full_name, avatar_url, bio, role, created_at, updated_at`

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, full_name, avatar_url, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.ID, p.Username, p.FullName, p.AvatarURL, p.Bio, p.Role).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return translateError(err)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

// UsernameTaken checks case-insensitively, ignoring excludeID.
func (r *ProfileRepository) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE LOWER(username) = LOWER($1) AND id <> $2)`
	var taken bool
	if err := r.db.QueryRow(ctx, query, username, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// Update applies the non-nil fields of req and returns the stored row.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	query := `
		UPDATE profiles SET
			username   = COALESCE($2, username),
			full_name  = COALESCE($3, full_name),
			bio        = COALESCE($4, bio),
			avatar_url = COALESCE($5, avatar_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRow(ctx, query, id, req.Username, req.FullName, req.Bio, req.AvatarURL))
}

func (r *ProfileRepository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
