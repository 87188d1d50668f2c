// Package booking runs the user-facing booking flow: resolve the catalog
// item, validate the request, record the booking and build the confirmation
// the dashboard shows as a toast.
package booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/trekora/trekdesk/internal/catalog"
	"github.com/trekora/trekdesk/internal/ledger"
	"github.com/trekora/trekdesk/internal/model"
)

const confirmationMessageFormat = "Booking confirmed for %s"

var categoryByBookingType = map[model.BookingType]model.CatalogCategory{
	model.BookingTypeHotel:     model.CategoryHotels,
	model.BookingTypeEquipment: model.CategoryEquipment,
	model.BookingTypeTrekking:  model.CategoryRoutes,
	model.BookingTypeAgency:    model.CategoryAgencies,
	model.BookingTypeGuide:     model.CategoryGuides,
}

// Request carries the fields a view submits to book a catalog item.
type Request struct {
	OwnerIdentity   string            `json:"ownerIdentity" validate:"required"`
	Type            model.BookingType `json:"type" validate:"required,oneof=hotel equipment trekking agency guide"`
	ItemID          string            `json:"itemId" validate:"required"`
	StartDate       string            `json:"startDate" validate:"required"`
	EndDate         string            `json:"endDate" validate:"required"`
	Quantity        int               `json:"quantity,omitempty" validate:"omitempty,min=1"`
	GroupSize       int               `json:"groupSize,omitempty" validate:"omitempty,min=1"`
	Size            string            `json:"size,omitempty"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
}

// Confirmation is the payload behind the success notification.
type Confirmation struct {
	BookingID   string  `json:"bookingId"`
	SubjectName string  `json:"subjectName"`
	Total       float64 `json:"total"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Message     string  `json:"message"`
}

// Workflow coordinates the catalog repository and the booking ledger for one
// booking operation. Failures never touch stored state.
type Workflow struct {
	catalogRepository *catalog.Repository
	bookingLedger     *ledger.Ledger
	validate          *validator.Validate
}

// NewWorkflow creates a booking workflow over the repository and ledger.
func NewWorkflow(catalogRepository *catalog.Repository, bookingLedger *ledger.Ledger) *Workflow {
	return &Workflow{
		catalogRepository: catalogRepository,
		bookingLedger:     bookingLedger,
		validate:          validator.New(),
	}
}

// Book resolves the requested item, records the booking and returns the
// confirmation. Route booking tallies are derived on read, so trekking
// bookings write nothing beyond the ledger record.
func (workflow *Workflow) Book(request Request) (Confirmation, error) {
	if validationErr := workflow.validate.Struct(request); validationErr != nil {
		if fieldErrors, ok := validationErr.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			firstField := fieldErrors[0]
			return Confirmation{}, ledger.NewValidationError(firstField.Field(), firstField.Tag())
		}
		return Confirmation{}, validationErr
	}

	category := categoryByBookingType[request.Type]
	item, lookupErr := workflow.catalogRepository.ItemByID(category, request.ItemID)
	if lookupErr != nil {
		return Confirmation{}, lookupErr
	}

	recorded, createErr := workflow.bookingLedger.CreateBooking(model.Booking{
		Type:            request.Type,
		OwnerIdentity:   request.OwnerIdentity,
		SubjectName:     item.Name,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		Quantity:        request.Quantity,
		GroupSize:       request.GroupSize,
		Size:            request.Size,
		SpecialRequests: request.SpecialRequests,
		DailyPrice:      item.UnitPrice(),
	})
	if createErr != nil {
		return Confirmation{}, createErr
	}

	return Confirmation{
		BookingID:   recorded.ID,
		SubjectName: recorded.SubjectName,
		Total:       recorded.TotalPrice,
		StartDate:   recorded.StartDate,
		EndDate:     recorded.EndDate,
		Message:     fmt.Sprintf(confirmationMessageFormat, recorded.SubjectName),
	}, nil
}
