package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationDaysExactSpan(testingT *testing.T) {
	startDate, parseErr := ParseDate("2024-01-01")
	require.NoError(testingT, parseErr)
	endDate, parseErr := ParseDate("2024-01-04")
	require.NoError(testingT, parseErr)

	require.Equal(testingT, 3, DurationDays(startDate, endDate))
}

func TestDurationDaysZeroSpan(testingT *testing.T) {
	date, parseErr := ParseDate("2024-01-01")
	require.NoError(testingT, parseErr)

	require.Equal(testingT, 0, DurationDays(date, date))
}

func TestDurationDaysRoundsPartialDaysUp(testingT *testing.T) {
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)

	require.Equal(testingT, 2, DurationDays(startDate, endDate))
}

func TestParseDateRejectsMalformedValue(testingT *testing.T) {
	_, parseErr := ParseDate("01/15/2024")
	require.Error(testingT, parseErr)
}

func TestStatusAllowedPerBookingType(testingT *testing.T) {
	require.True(testingT, StatusAllowed(BookingTypeHotel, StatusPending))
	require.True(testingT, StatusAllowed(BookingTypeEquipment, StatusReturned))
	require.True(testingT, StatusAllowed(BookingTypeTrekking, StatusCompleted))
	require.False(testingT, StatusAllowed(BookingTypeHotel, StatusReturned))
	require.False(testingT, StatusAllowed(BookingTypeEquipment, StatusPending))
}

func TestAllowedStatusesUnknownTypeIsEmpty(testingT *testing.T) {
	require.Empty(testingT, AllowedStatuses(BookingType("cruise")))
}
