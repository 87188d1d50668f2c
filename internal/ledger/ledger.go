// Package ledger keeps the booking records shared by the user and admin
// dashboards. User bookings and admin bookings live in separate store arrays;
// seed bookings are baked in and immutable.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

const (
	logEventCorruptLedger = "corrupt_ledger_value"
	logFieldStoreKey      = "store_key"

	adminBookingIDPrefix = "BK"
	adminBookingIDFormat = "BK%03d"

	equipmentAmountSuffix = "/day"
	amountCurrencyPrefix  = "$"
)

var bookingIDPrefixByType = map[model.BookingType]string{
	model.BookingTypeHotel:     "BK",
	model.BookingTypeEquipment: "R",
	model.BookingTypeTrekking:  "TB",
	model.BookingTypeAgency:    "AB",
	model.BookingTypeGuide:     "GB",
}

var initialStatusByType = map[model.BookingType]model.BookingStatus{
	model.BookingTypeHotel:     model.StatusConfirmed,
	model.BookingTypeEquipment: model.StatusConfirmed,
	model.BookingTypeTrekking:  model.StatusPending,
	model.BookingTypeAgency:    model.StatusPending,
	model.BookingTypeGuide:     model.StatusPending,
}

// AdminBookingView is the display shape the admin booking table renders.
type AdminBookingView struct {
	ID        string `json:"id"`
	Guest     string `json:"guest"`
	Subject   string `json:"subject"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}

// Ledger reads and writes the booking arrays in the store.
type Ledger struct {
	backingStore store.Store
	logger       *zap.Logger
	now          func() time.Time
}

// NewLedger creates a booking ledger over the given store.
func NewLedger(backingStore store.Store, logger *zap.Logger) *Ledger {
	return &Ledger{backingStore: backingStore, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for time-derived identifiers and booking
// dates.
func (bookingLedger *Ledger) WithClock(now func() time.Time) *Ledger {
	bookingLedger.now = now
	return bookingLedger
}

// ListSeedBookings returns fresh copies of the built-in bookings.
func (bookingLedger *Ledger) ListSeedBookings() []model.Booking {
	return defaultBookings()
}

// ListOwnerBookings returns the user bookings whose owner matches exactly.
// Seed bookings are excluded; they are read-only display data exposed through
// ListSeedBookings.
func (bookingLedger *Ledger) ListOwnerBookings(ownerIdentity string) ([]model.Booking, error) {
	userBookings, readErr := bookingLedger.readBookings(store.KeyUserBookings)
	if readErr != nil {
		return nil, readErr
	}
	ownedBookings := []model.Booking{}
	for _, booking := range userBookings {
		if booking.OwnerIdentity == ownerIdentity {
			ownedBookings = append(ownedBookings, booking)
		}
	}
	return ownedBookings, nil
}

// ListAdminViews returns every booking in display shape: seed bookings first,
// then admin-authored bookings, then user bookings with the owner shown as the
// guest.
func (bookingLedger *Ledger) ListAdminViews() ([]AdminBookingView, error) {
	adminBookings, adminReadErr := bookingLedger.readBookings(store.KeyAdminBookings)
	if adminReadErr != nil {
		return nil, adminReadErr
	}
	userBookings, userReadErr := bookingLedger.readBookings(store.KeyUserBookings)
	if userReadErr != nil {
		return nil, userReadErr
	}

	views := []AdminBookingView{}
	for _, booking := range defaultBookings() {
		views = append(views, adminViewOf(booking))
	}
	for _, booking := range adminBookings {
		views = append(views, adminViewOf(booking))
	}
	for _, booking := range userBookings {
		views = append(views, adminViewOf(booking))
	}
	return views, nil
}

func adminViewOf(booking model.Booking) AdminBookingView {
	guestName := booking.GuestName
	if guestName == "" {
		guestName = booking.OwnerIdentity
	}
	return AdminBookingView{
		ID:        booking.ID,
		Guest:     guestName,
		Subject:   booking.SubjectName,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Status:    string(booking.Status),
		Amount:    amountOf(booking),
	}
}

func amountOf(booking model.Booking) string {
	if booking.Type == model.BookingTypeEquipment {
		return amountCurrencyPrefix + formatAmount(booking.DailyPrice) + equipmentAmountSuffix
	}
	return amountCurrencyPrefix + formatAmount(booking.TotalPrice)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// CreateBooking validates the date range, derives id, duration and total
// price, and appends the booking to the user booking array. The daily price
// and subject name are expected to be resolved by the caller.
func (bookingLedger *Ledger) CreateBooking(booking model.Booking) (model.Booking, error) {
	startDate, startErr := model.ParseDate(booking.StartDate)
	if startErr != nil {
		return model.Booking{}, NewValidationError("startDate", startErr.Error())
	}
	endDate, endErr := model.ParseDate(booking.EndDate)
	if endErr != nil {
		return model.Booking{}, NewValidationError("endDate", endErr.Error())
	}
	if endDate.Before(startDate) {
		return model.Booking{}, NewValidationError("endDate", "end date precedes start date")
	}

	if booking.Quantity <= 0 {
		booking.Quantity = 1
	}
	durationDays := model.DurationDays(startDate, endDate)
	if durationDays < 1 {
		durationDays = 1
	}
	booking.TotalPrice = booking.DailyPrice * float64(durationDays) * float64(booking.Quantity)

	if strings.TrimSpace(booking.ID) == "" {
		booking.ID = fmt.Sprintf("%s%d", bookingIDPrefixByType[booking.Type], bookingLedger.now().UnixMilli())
	}
	if booking.Status == "" {
		booking.Status = initialStatusByType[booking.Type]
	}
	if booking.BookingDate == "" {
		booking.BookingDate = bookingLedger.now().Format(model.DateLayout)
	}
	booking.IsDefault = false

	userBookings, readErr := bookingLedger.readBookings(store.KeyUserBookings)
	if readErr != nil {
		return model.Booking{}, readErr
	}
	updatedBookings := append(userBookings, booking)
	if writeErr := store.WriteJSON(bookingLedger.backingStore, store.KeyUserBookings, updatedBookings); writeErr != nil {
		return model.Booking{}, writeErr
	}
	return booking, nil
}

// CreateAdminBooking appends an admin-authored booking with the next
// sequential id, counting from the highest numeric suffix across seeds and
// stored admin bookings.
func (bookingLedger *Ledger) CreateAdminBooking(booking model.Booking) (model.Booking, error) {
	adminBookings, readErr := bookingLedger.readBookings(store.KeyAdminBookings)
	if readErr != nil {
		return model.Booking{}, readErr
	}

	if strings.TrimSpace(booking.ID) == "" {
		highestSequence := 0
		for _, existing := range append(defaultBookings(), adminBookings...) {
			sequence, parseErr := strconv.Atoi(strings.TrimPrefix(existing.ID, adminBookingIDPrefix))
			if parseErr == nil && sequence > highestSequence {
				highestSequence = sequence
			}
		}
		booking.ID = fmt.Sprintf(adminBookingIDFormat, highestSequence+1)
	}
	if booking.Status == "" {
		booking.Status = initialStatusByType[booking.Type]
	}
	booking.OwnerIdentity = ""
	booking.IsDefault = false

	updatedBookings := append(adminBookings, booking)
	if writeErr := store.WriteJSON(bookingLedger.backingStore, store.KeyAdminBookings, updatedBookings); writeErr != nil {
		return model.Booking{}, writeErr
	}
	return booking, nil
}

// UpdateBooking merges the submitted fields into the stored booking that
// matches the id and returns the merged record. Unset fields keep their stored
// values; the owner never changes. Seed bookings report ErrImmutableRecord.
func (bookingLedger *Ledger) UpdateBooking(updated model.Booking) (model.Booking, error) {
	var merged model.Booking
	mutateErr := bookingLedger.mutateStored(updated.ID, func(storedBookings []model.Booking, index int) ([]model.Booking, error) {
		merged = mergeBooking(storedBookings[index], updated)
		storedBookings[index] = merged
		return storedBookings, nil
	})
	if mutateErr != nil {
		return model.Booking{}, mutateErr
	}
	return merged, nil
}

func mergeBooking(existing model.Booking, updated model.Booking) model.Booking {
	merged := existing
	if updated.Type != "" {
		merged.Type = updated.Type
	}
	if updated.GuestName != "" {
		merged.GuestName = updated.GuestName
	}
	if updated.SubjectName != "" {
		merged.SubjectName = updated.SubjectName
	}
	if updated.StartDate != "" {
		merged.StartDate = updated.StartDate
	}
	if updated.EndDate != "" {
		merged.EndDate = updated.EndDate
	}
	if updated.Status != "" {
		merged.Status = updated.Status
	}
	if updated.Quantity > 0 {
		merged.Quantity = updated.Quantity
	}
	if updated.GroupSize > 0 {
		merged.GroupSize = updated.GroupSize
	}
	if updated.Size != "" {
		merged.Size = updated.Size
	}
	if updated.SpecialRequests != "" {
		merged.SpecialRequests = updated.SpecialRequests
	}
	if updated.DailyPrice > 0 {
		merged.DailyPrice = updated.DailyPrice
	}
	if updated.TotalPrice > 0 {
		merged.TotalPrice = updated.TotalPrice
	}
	if updated.BookingDate != "" {
		merged.BookingDate = updated.BookingDate
	}
	if updated.Details != "" {
		merged.Details = updated.Details
	}
	merged.IsDefault = false
	return merged
}

// DeleteBooking removes the stored booking that matches the id. Seed bookings
// report ErrImmutableRecord.
func (bookingLedger *Ledger) DeleteBooking(bookingID string) error {
	return bookingLedger.mutateStored(bookingID, func(storedBookings []model.Booking, index int) ([]model.Booking, error) {
		return append(storedBookings[:index], storedBookings[index+1:]...), nil
	})
}

// CancelBooking moves a pending booking to cancelled. A non-empty
// ownerIdentity restricts the cancel to that owner's records and reports
// ErrNotOwner on a mismatch; admin callers pass the empty string. Bookings in
// any other status report ErrCancelNotPending. A refused cancel writes
// nothing.
func (bookingLedger *Ledger) CancelBooking(ownerIdentity string, bookingID string) error {
	return bookingLedger.mutateStored(bookingID, func(storedBookings []model.Booking, index int) ([]model.Booking, error) {
		if ownerIdentity != "" && storedBookings[index].OwnerIdentity != ownerIdentity {
			return nil, fmt.Errorf("%w: %s", ErrNotOwner, bookingID)
		}
		if storedBookings[index].Status != model.StatusPending {
			return nil, fmt.Errorf("%w: %s is %s", ErrCancelNotPending, bookingID, storedBookings[index].Status)
		}
		storedBookings[index].Status = model.StatusCancelled
		return storedBookings, nil
	})
}

// ListStoredBookings returns the admin-authored and user bookings in store
// order, admin array first. Seed bookings are not included.
func (bookingLedger *Ledger) ListStoredBookings() ([]model.Booking, error) {
	adminBookings, adminReadErr := bookingLedger.readBookings(store.KeyAdminBookings)
	if adminReadErr != nil {
		return nil, adminReadErr
	}
	userBookings, userReadErr := bookingLedger.readBookings(store.KeyUserBookings)
	if userReadErr != nil {
		return nil, userReadErr
	}
	return append(adminBookings, userBookings...), nil
}

func (bookingLedger *Ledger) mutateStored(bookingID string, mutate func([]model.Booking, int) ([]model.Booking, error)) error {
	for _, seedBooking := range defaultBookings() {
		if seedBooking.ID == bookingID {
			return fmt.Errorf("%w: %s", ErrImmutableRecord, bookingID)
		}
	}

	for _, storeKey := range []string{store.KeyAdminBookings, store.KeyUserBookings} {
		storedBookings, readErr := bookingLedger.readBookings(storeKey)
		if readErr != nil {
			return readErr
		}
		for index, storedBooking := range storedBookings {
			if storedBooking.ID == bookingID {
				updatedBookings, mutateErr := mutate(storedBookings, index)
				if mutateErr != nil {
					return mutateErr
				}
				return store.WriteJSON(bookingLedger.backingStore, storeKey, updatedBookings)
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, bookingID)
}

func (bookingLedger *Ledger) readBookings(storeKey string) ([]model.Booking, error) {
	var storedBookings []model.Booking
	found, readErr := store.ReadJSON(bookingLedger.backingStore, storeKey, &storedBookings)
	if readErr != nil {
		if errors.Is(readErr, store.ErrCorruptValue) {
			if bookingLedger.logger != nil {
				bookingLedger.logger.Warn(logEventCorruptLedger,
					zap.String(logFieldStoreKey, storeKey),
					zap.Error(readErr),
				)
			}
			return nil, nil
		}
		return nil, readErr
	}
	if !found || storedBookings == nil {
		return []model.Booking{}, nil
	}
	return storedBookings, nil
}
