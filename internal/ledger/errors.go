package ledger

import (
	"errors"
	"fmt"
)

const (
	errorMessageImmutableRecord  = "ledger: default records are immutable"
	errorMessageBookingNotFound  = "ledger: booking not found"
	errorMessageCancelNotPending = "ledger: only pending bookings can be cancelled"
	errorMessageNotOwner         = "ledger: booking belongs to another identity"
)

var (
	// ErrImmutableRecord indicates an attempted edit or delete of a default record.
	ErrImmutableRecord = errors.New(errorMessageImmutableRecord)
	// ErrNotFound indicates a lookup of a booking id that does not exist.
	ErrNotFound = errors.New(errorMessageBookingNotFound)
	// ErrCancelNotPending indicates a cancel on a booking that is not pending.
	ErrCancelNotPending = errors.New(errorMessageCancelNotPending)
	// ErrNotOwner indicates an owner-scoped operation on another identity's booking.
	ErrNotOwner = errors.New(errorMessageNotOwner)
)

// ValidationError reports a rejected field on a booking request.
type ValidationError struct {
	Field  string
	Reason string
}

// Error formats the field and reason for display in a notification.
func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("ledger: invalid %s: %s", validationError.Field, validationError.Reason)
}

// NewValidationError constructs a ValidationError for a field.
func NewValidationError(field string, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}
