package models

import "github.com/google/uuid"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// In reports whether r is one of the allowed roles.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanModify is the single ownership rule: the owner or any admin.
func (p Principal) CanModify(ownerID uuid.UUID) bool {
	return p.IsAdmin() || (p.ID != uuid.Nil && p.ID == ownerID)
}
