package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the user shape returned by the auth endpoints.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	Role      Role      `json:"role"`
}

func NewPublicUser(p *Profile, email string) PublicUser {
	return PublicUser{
		ID:        p.ID,
		Email:     email,
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
	}
}

// Identity is an account held by the identity provider.
type Identity struct {
	ID    uuid.UUID
	Email string
	// SessionToken is set by providers that keep their own sessions.
	SessionToken string
}
