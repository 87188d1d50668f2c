// Package store provides the durable string-keyed value store shared by every
// dashboard view, together with per-key change notification. Values are
// JSON-encoded arrays and objects; keys are centralized here so format drift
// is normalized at a single boundary.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Well-known keys of the persisted state layout.
const (
	KeyUser           = "user"
	KeyUserBookings   = "userBookings"
	KeyAdminBookings  = "adminBookings"
	KeyAdminHotels    = "adminHotels"
	KeyAdminEquipment = "adminEquipment"
	KeyAdminRoutes    = "adminRoutes"
	KeyAdminAgencies  = "adminAgencies"
	KeyAdminGuides    = "adminGuides"
)

const (
	errorMessageMissingKey   = "store: missing key"
	errorMessageCorruptValue = "store: corrupt value"
)

var (
	// ErrMissingKey indicates an empty key was passed to a store operation.
	ErrMissingKey = errors.New(errorMessageMissingKey)
	// ErrCorruptValue indicates the persisted JSON at a known key does not decode.
	ErrCorruptValue = errors.New(errorMessageCorruptValue)
)

// Store is synchronous string-keyed durable storage. Get reports presence
// explicitly; Remove of an absent key is a no-op.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Remove(key string) error
}

// ReadJSON decodes the value at key into target. Absent keys leave target
// untouched and report found=false. A present but undecodable value yields
// ErrCorruptValue; callers uniformly fall back to empty lists or defaults.
func ReadJSON(backingStore Store, key string, target any) (bool, error) {
	rawValue, found, getErr := backingStore.Get(key)
	if getErr != nil {
		return false, getErr
	}
	if !found {
		return false, nil
	}
	if decodeErr := json.Unmarshal([]byte(rawValue), target); decodeErr != nil {
		return true, fmt.Errorf("%w: key %s: %v", ErrCorruptValue, key, decodeErr)
	}
	return true, nil
}

// WriteJSON encodes value and stores it at key.
func WriteJSON(backingStore Store, key string, value any) error {
	encoded, encodeErr := json.Marshal(value)
	if encodeErr != nil {
		return fmt.Errorf("store: encode key %s: %w", key, encodeErr)
	}
	return backingStore.Set(key, string(encoded))
}

// NewSubscriptionID generates a unique identifier for change subscriptions.
func NewSubscriptionID() string {
	return uuid.NewString()
}
