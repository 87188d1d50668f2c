// Package auth resolves the current identity from the store and drives the
// login, logout and signup flows. Identity is a trusted string; there is no
// credential verification.
package auth

import (
	"encoding/json"
	"strings"

	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

// Navigation targets keyed by role.
const (
	PathLogin         = "/login"
	PathAdminHome     = "/admin"
	PathUserDashboard = "/user-dashboard"
)

// NormalizeIdentity decodes the persisted identity value. Older sessions
// stored a bare email string instead of a JSON object; those normalize to a
// plain user role here, at the single read boundary.
func NormalizeIdentity(rawValue string) model.Identity {
	trimmed := strings.TrimSpace(rawValue)
	if trimmed == "" {
		return model.Identity{}
	}
	var identity model.Identity
	if decodeErr := json.Unmarshal([]byte(trimmed), &identity); decodeErr == nil && identity.Email != "" {
		if identity.Role == "" {
			identity.Role = model.RoleUser
		}
		return identity
	}
	return model.Identity{Email: trimmed, Role: model.RoleUser}
}

// CurrentIdentity reads the stored identity, normalizing legacy values. An
// absent key yields the zero identity.
func CurrentIdentity(backingStore store.Store) (model.Identity, error) {
	rawValue, found, getErr := backingStore.Get(store.KeyUser)
	if getErr != nil {
		return model.Identity{}, getErr
	}
	if !found {
		return model.Identity{}, nil
	}
	return NormalizeIdentity(rawValue), nil
}

// SaveIdentity persists the identity as a JSON object.
func SaveIdentity(backingStore store.Store, identity model.Identity) error {
	return store.WriteJSON(backingStore, store.KeyUser, identity)
}

// ClearIdentity removes the stored identity.
func ClearIdentity(backingStore store.Store) error {
	return backingStore.Remove(store.KeyUser)
}

// DashboardPathForRole maps an identity to its landing path. Unauthenticated
// visitors land on the login page.
func DashboardPathForRole(identity model.Identity) string {
	if identity.IsZero() {
		return PathLogin
	}
	if identity.IsAdmin() {
		return PathAdminHome
	}
	return PathUserDashboard
}
