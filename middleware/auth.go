package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"news-portal/models"
	"news-portal/repositories"
	"news-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

type ProfileFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Authenticator turns a bearer token into a models.Principal. The role
// is read from the stored profile so demotions apply immediately.
type Authenticator struct {
	tokens   TokenVerifier
	profiles ProfileFinder
	logger   *slog.Logger
}

func NewAuthenticator(tokens TokenVerifier, profiles ProfileFinder, logger *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, profiles: profiles, logger: logger}
}

// Authenticate rejects requests without a valid bearer token.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		principal, err := a.resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, repositories.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			a.logger.Error("authenticate", "error", err)
			abort(c, http.StatusInternalServerError, "Something went wrong!")
			return
		}

		SetPrincipal(c, *principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// lets every request through.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if principal, err := a.resolve(c.Request.Context(), token); err == nil {
				SetPrincipal(c, *principal)
			}
		}
		c.Next()
	}
}

func (a *Authenticator) resolve(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	profile, err := a.profiles.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	return &models.Principal{ID: profile.ID, Email: claims.Email, Role: profile.Role}, nil
}

// Authorize must run after Authenticate.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		if !principal.Role.In(roles...) {
			abort(c, http.StatusForbidden, "Access denied. Insufficient permissions")
			return
		}

		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}

func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
	})
}
