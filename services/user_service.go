package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/google/uuid"
)

type UserService struct {
	profiles   ProfileStore
	identities IdentityProvider
	sanitizer  Sanitizer
	notifier   Notifier
	logger     *slog.Logger
}

func NewUserService(profiles ProfileStore, identities IdentityProvider, sanitizer Sanitizer, notifier Notifier, logger *slog.Logger) *UserService {
	if notifier == nil {
		notifier = NoopNotifier
	}
	return &UserService{
		profiles:   profiles,
		identities: identities,
		sanitizer:  sanitizer,
		notifier:   notifier,
		logger:     logger,
	}
}

// List returns every profile with the "user" role.
func (s *UserService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.ListByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, models.InternalError("failed to list users", err)
	}
	return profiles, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError("User not found")
		}
		return nil, models.InternalError("failed to load user", err)
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		req.Username = &username
	}
	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		req.FullName = &fullName
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Bio != nil {
		bio := s.sanitizer.Sanitize(*req.Bio)
		req.Bio = &bio
	}

	if req.Username != nil {
		taken, err := s.profiles.UsernameTaken(ctx, *req.Username, id)
		if err != nil {
			return nil, models.InternalError("failed to check username", err)
		}
		if taken {
			return nil, models.ConflictError("Username already taken")
		}
	}

	profile, err := s.profiles.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, models.NotFoundError("User not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, models.ConflictError("Username already taken")
		}
		return nil, models.InternalError("failed to update profile", err)
	}
	return profile, nil
}

// ChangePassword verifies the old password with the identity provider
// before replacing it.
func (s *UserService) ChangePassword(ctx context.Context, principal models.Principal, req models.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.OldPassword == req.NewPassword {
		return models.ValidationError("New password must be different from old password")
	}

	identity, err := s.identities.SignIn(ctx, principal.Email, req.OldPassword)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return models.ValidationError("Invalid old password")
		}
		return models.UpstreamError("failed to verify password", err)
	}
	if identity.ID != principal.ID {
		return models.ValidationError("Invalid old password")
	}
	if identity.SessionToken != "" {
		if err := s.identities.SignOut(ctx, identity.SessionToken); err != nil {
			s.logger.Debug("verification session not closed", "error", err)
		}
	}

	if err := s.identities.SetPassword(ctx, principal.ID, req.NewPassword); err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return models.NotFoundError("User not found")
		}
		return models.UpstreamError("failed to change password", err)
	}

	fullName := ""
	if profile, err := s.profiles.FindByID(ctx, principal.ID); err == nil {
		fullName = profile.FullName
	}
	if err := s.notifier.SendPasswordChanged(ctx, principal.Email, fullName); err != nil {
		s.logger.Warn("password change mail not sent", "user_id", principal.ID, "error", err)
	}

	s.logger.Info("password changed", "user_id", principal.ID)
	return nil
}
