package services

import (
	"context"
	"errors"
	"log/slog"

	"news-portal/models"
	"news-portal/repositories"
)

var (
	defaultCategories = []string{"Politics", "Business", "Technology", "Sports", "Entertainment", "Health"}
	defaultTags       = []string{"breaking", "analysis", "opinion", "interview", "feature"}
)

type SeedAdmin struct {
	Email    string
	Password string
	Username string
	FullName string
}

// SeedService fills an empty database with an admin account and the
// default categories and tags. Existing rows are left alone.
type SeedService struct {
	profiles   ProfileStore
	identities IdentityProvider
	categories CategoryStore
	tags       TagStore
	logger     *slog.Logger
}

func NewSeedService(profiles ProfileStore, identities IdentityProvider, categories CategoryStore, tags TagStore, logger *slog.Logger) *SeedService {
	return &SeedService{
		profiles:   profiles,
		identities: identities,
		categories: categories,
		tags:       tags,
		logger:     logger,
	}
}

func (s *SeedService) Seed(ctx context.Context, admin SeedAdmin) error {
	if err := s.seedAdmin(ctx, admin); err != nil {
		return err
	}

	for _, name := range defaultCategories {
		if _, err := s.categories.Create(ctx, name, nil); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
	}
	for _, name := range defaultTags {
		if _, err := s.tags.Create(ctx, name); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
	}

	s.logger.Info("seed complete", "categories", len(defaultCategories), "tags", len(defaultTags))
	return nil
}

func (s *SeedService) seedAdmin(ctx context.Context, admin SeedAdmin) error {
	if admin.Email == "" || admin.Password == "" {
		s.logger.Info("no admin credentials given, skipping admin seed")
		return nil
	}

	identity, err := s.identities.SignUp(ctx, admin.Email, admin.Password)
	if errors.Is(err, ErrEmailTaken) {
		s.logger.Info("admin already exists", "email", admin.Email)
		return nil
	}
	if err != nil {
		return err
	}

	profile := &models.Profile{
		ID:       identity.ID,
		Username: admin.Username,
		FullName: admin.FullName,
		Role:     models.RoleAdmin,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		_ = s.identities.Delete(ctx, identity.ID)
		return err
	}
	s.logger.Info("admin created", "user_id", identity.ID)
	return nil
}
