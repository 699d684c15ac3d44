package repositories

import (
	"context"

	"github.com/google/uuid"
)

// StoredIdentity is a row of auth_identities.
type StoredIdentity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// IdentityRepository holds credentials for the built-in identity provider.
type IdentityRepository struct {
	db DBTX
}

func NewIdentityRepository(db DBTX) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(ctx context.Context, id uuid.UUID, email, passwordHash string) error {
	query := `INSERT INTO auth_identities (id, email, password_hash) VALUES ($1, LOWER($2), $3)`
	_, err := r.db.Exec(ctx, query, id, email, passwordHash)
	return translateError(err)
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*StoredIdentity, error) {
	query := `SELECT id, email, password_hash FROM auth_identities WHERE email = LOWER($1)`
	si := &StoredIdentity{}
	if err := r.db.QueryRow(ctx, query, email).Scan(&si.ID, &si.Email, &si.PasswordHash); err != nil {
		return nil, translateError(err)
	}
	return si, nil
}

func (r *IdentityRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE auth_identities SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_identities WHERE id = $1`, id)
	return err
}
