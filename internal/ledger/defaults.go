package ledger

import "github.com/trekora/trekdesk/internal/model"

// Seed bookings shipped with the dashboard. They render in every booking list
// but reject edits, deletes and cancellations.

func defaultBookings() []model.Booking {
	return []model.Booking{
		{
			ID:          "BK001",
			Type:        model.BookingTypeHotel,
			GuestName:   "John Doe",
			SubjectName: "Mountain View Lodge",
			StartDate:   "2024-01-15",
			EndDate:     "2024-01-18",
			Status:      model.StatusConfirmed,
			TotalPrice:  450,
			IsDefault:   true,
		},
		{
			ID:          "BK002",
			Type:        model.BookingTypeHotel,
			GuestName:   "Jane Smith",
			SubjectName: "Himalayan Resort",
			StartDate:   "2024-01-20",
			EndDate:     "2024-01-25",
			Status:      model.StatusPending,
			TotalPrice:  890,
			IsDefault:   true,
		},
		{
			ID:          "BK003",
			Type:        model.BookingTypeHotel,
			GuestName:   "Mike Johnson",
			SubjectName: "Base Camp Hotel",
			StartDate:   "2024-01-22",
			EndDate:     "2024-01-24",
			Status:      model.StatusConfirmed,
			TotalPrice:  320,
			IsDefault:   true,
		},
		{
			ID:          "RT001",
			Type:        model.BookingTypeEquipment,
			GuestName:   "Alice Brown",
			SubjectName: "Professional Trekking Boots",
			StartDate:   "2024-01-16",
			EndDate:     "2024-01-19",
			Status:      model.StatusActive,
			Quantity:    1,
			DailyPrice:  15,
			TotalPrice:  45,
			IsDefault:   true,
		},
		{
			ID:          "RT002",
			Type:        model.BookingTypeEquipment,
			GuestName:   "Bob Wilson",
			SubjectName: "4-Season Sleeping Bag",
			StartDate:   "2024-01-18",
			EndDate:     "2024-01-23",
			Status:      model.StatusActive,
			Quantity:    2,
			DailyPrice:  12,
			TotalPrice:  60,
			IsDefault:   true,
		},
		{
			ID:          "GD001",
			Type:        model.BookingTypeGuide,
			GuestName:   "Sarah Lee",
			SubjectName: "Mountain Guide - Raj",
			StartDate:   "2024-02-01",
			EndDate:     "2024-02-05",
			Status:      model.StatusPending,
			TotalPrice:  300,
			IsDefault:   true,
		},
	}
}
