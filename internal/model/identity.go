package model

import "strings"

// Role determines which dashboard an identity is routed to.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is the freeform string identifying the acting user plus its role.
// There is no password verification and no session expiry; the stored value is
// trusted as-is.
type Identity struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (identity Identity) IsAdmin() bool {
	return identity.Role == RoleAdmin
}

// IsZero reports whether the identity is unauthenticated.
func (identity Identity) IsZero() bool {
	return strings.TrimSpace(identity.Email) == ""
}
