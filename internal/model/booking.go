package model

import (
	"fmt"
	"time"
)

// BookingType discriminates the booking variants in the shared ledger arrays.
type BookingType string

const (
	BookingTypeHotel     BookingType = "hotel"
	BookingTypeEquipment BookingType = "equipment"
	BookingTypeTrekking  BookingType = "trekking"
	BookingTypeAgency    BookingType = "agency"
	BookingTypeGuide     BookingType = "guide"
)

// BookingStatus is the lifecycle state of a booking. The allowed set is
// category-dependent; see AllowedStatuses.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusActive    BookingStatus = "active"
	StatusReturned  BookingStatus = "returned"
)

// DateLayout is the calendar-date format used throughout the persisted state.
const DateLayout = "2006-01-02"

// Booking is a reservation against exactly one catalog item, referenced by
// denormalized name. Default bookings are seed data: immutable and
// non-deletable.
type Booking struct {
	ID              string        `json:"id"`
	Type            BookingType   `json:"type"`
	OwnerIdentity   string        `json:"ownerIdentity,omitempty"`
	GuestName       string        `json:"guestName,omitempty"`
	SubjectName     string        `json:"subjectName"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	Status          BookingStatus `json:"status"`
	Quantity        int           `json:"quantity,omitempty"`
	GroupSize       int           `json:"groupSize,omitempty"`
	Size            string        `json:"size,omitempty"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	DailyPrice      float64       `json:"dailyPrice,omitempty"`
	TotalPrice      float64       `json:"totalPrice,omitempty"`
	BookingDate     string        `json:"bookingDate,omitempty"`
	Details         string        `json:"details,omitempty"`
	IsDefault       bool          `json:"isDefault,omitempty"`
}

var allowedStatusesByType = map[BookingType][]BookingStatus{
	BookingTypeHotel:     {StatusPending, StatusConfirmed, StatusCancelled},
	BookingTypeEquipment: {StatusConfirmed, StatusActive, StatusReturned, StatusCancelled},
	BookingTypeTrekking:  {StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled},
	BookingTypeAgency:    {StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled},
	BookingTypeGuide:     {StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled},
}

// AllowedStatuses returns the valid status set for a booking type.
func AllowedStatuses(bookingType BookingType) []BookingStatus {
	return allowedStatusesByType[bookingType]
}

// StatusAllowed reports whether the status belongs to the booking type's set.
func StatusAllowed(bookingType BookingType, status BookingStatus) bool {
	for _, allowed := range allowedStatusesByType[bookingType] {
		if allowed == status {
			return true
		}
	}
	return false
}

// ParseDate parses a calendar date in the persisted layout.
func ParseDate(value string) (time.Time, error) {
	parsed, parseErr := time.Parse(DateLayout, value)
	if parseErr != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, parseErr)
	}
	return parsed, nil
}

// DurationDays computes ceil((end-start)/1 day) between two calendar dates.
func DurationDays(startDate time.Time, endDate time.Time) int {
	span := endDate.Sub(startDate)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		days++
	}
	return days
}
