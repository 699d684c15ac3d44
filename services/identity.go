package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityNotFound   = errors.New("identity not found")
)

// IdentityProvider owns credentials. Profiles live in our database and
// share the identity's id.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*models.Identity, error)
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignOut(ctx context.Context, sessionToken string) error
	SetPassword(ctx context.Context, id uuid.UUID, password string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IdentityStore interface {
	Create(ctx context.Context, id uuid.UUID, email, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*repositories.StoredIdentity, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) (bool, error)
}

// LocalIdentityProvider keeps argon2 hashed credentials in Postgres.
type LocalIdentityProvider struct {
	store  IdentityStore
	hasher PasswordHasher
}

func NewLocalIdentityProvider(store IdentityStore, hasher PasswordHasher) *LocalIdentityProvider {
	return &LocalIdentityProvider{store: store, hasher: hasher}
}

func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	id := uuid.New()
	if err := p.store.Create(ctx, id, email, hash); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &models.Identity{ID: id, Email: email}, nil
}

func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	stored, err := p.store.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := p.hasher.Verify(stored.PasswordHash, password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return &models.Identity{ID: stored.ID, Email: stored.Email}, nil
}

// SignOut is a no-op; local sessions are the stateless JWTs.
func (p *LocalIdentityProvider) SignOut(ctx context.Context, sessionToken string) error {
	return nil
}

func (p *LocalIdentityProvider) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := p.store.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return err
	}
	return nil
}

func (p *LocalIdentityProvider) Delete(ctx context.Context, id uuid.UUID) error {
	return p.store.Delete(ctx, id)
}
