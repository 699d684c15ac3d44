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

type AuthService struct {
	profiles   ProfileStore
	identities IdentityProvider
	tokens     *TokenService
	notifier   Notifier
	logger     *slog.Logger
}

func NewAuthService(profiles ProfileStore, identities IdentityProvider, tokens *TokenService, notifier Notifier, logger *slog.Logger) *AuthService {
	if notifier == nil {
		notifier = NoopNotifier
	}
	return &AuthService{
		profiles:   profiles,
		identities: identities,
		tokens:     tokens,
		notifier:   notifier,
		logger:     logger,
	}
}

// Register creates the provider identity and then the profile. If the
// profile insert fails the identity is removed again.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	taken, err := s.profiles.UsernameTaken(ctx, req.Username, uuid.Nil)
	if err != nil {
		return nil, models.InternalError("failed to check username", err)
	}
	if taken {
		return nil, models.ConflictError("Username already taken")
	}

	identity, err := s.identities.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, models.ConflictError("Email already registered")
		}
		return nil, models.UpstreamError("failed to create account", err)
	}

	profile := &models.Profile{
		ID:       identity.ID,
		Username: req.Username,
		FullName: req.FullName,
		Role:     models.RoleUser,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if delErr := s.identities.Delete(ctx, identity.ID); delErr != nil {
			s.logger.Error("failed to remove identity after profile error",
				"identity_id", identity.ID, "error", delErr)
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("Username already taken")
		}
		return nil, models.InternalError("failed to create profile", err)
	}

	result, err := s.issue(profile, identity.Email)
	if err != nil {
		return nil, err
	}
	result.SessionToken = identity.SessionToken

	if err := s.notifier.SendWelcome(ctx, identity.Email, profile.FullName); err != nil {
		s.logger.Warn("welcome mail not sent", "user_id", profile.ID, "error", err)
	}

	s.logger.Info("user registered", "user_id", profile.ID)
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	identity, err := s.identities.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, models.AuthError("Invalid email or password")
		}
		return nil, models.UpstreamError("failed to sign in", err)
	}

	profile, err := s.profiles.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.AuthError("Profile not found")
		}
		return nil, models.InternalError("failed to load profile", err)
	}

	result, err := s.issue(profile, identity.Email)
	if err != nil {
		return nil, err
	}
	result.SessionToken = identity.SessionToken
	return result, nil
}

// Me returns the public fields for the authenticated principal.
func (s *AuthService) Me(ctx context.Context, principal models.Principal) (*models.PublicUser, error) {
	profile, err := s.profiles.FindByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.AuthError("Profile not found")
		}
		return nil, models.InternalError("failed to load profile", err)
	}
	user := models.NewPublicUser(profile, principal.Email)
	return &user, nil
}

// Logout ends a provider session when the client holds one. Session
// tokens issued by this service are stateless and simply expire.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.identities.SignOut(ctx, sessionToken); err != nil {
		return models.UpstreamError("failed to end session", err)
	}
	return nil
}

func (s *AuthService) issue(profile *models.Profile, email string) (*models.AuthResult, error) {
	token, err := s.tokens.Generate(models.Principal{ID: profile.ID, Email: email, Role: profile.Role})
	if err != nil {
		return nil, models.InternalError("failed to issue token", err)
	}
	return &models.AuthResult{
		Token: token,
		User:  models.NewPublicUser(profile, email),
	}, nil
}
