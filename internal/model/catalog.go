package model

// CatalogCategory identifies one of the bookable item catalogs.
type CatalogCategory string

const (
	CategoryHotels    CatalogCategory = "hotels"
	CategoryEquipment CatalogCategory = "equipment"
	CategoryRoutes    CatalogCategory = "routes"
	CategoryAgencies  CatalogCategory = "agencies"
	CategoryGuides    CatalogCategory = "guides"
)

// AllCatalogCategories lists every catalog category in display order.
var AllCatalogCategories = []CatalogCategory{
	CategoryHotels,
	CategoryEquipment,
	CategoryRoutes,
	CategoryAgencies,
	CategoryGuides,
}

// CatalogItem is the common shape shared by hotels, equipment, routes,
// agencies and guides. Category-specific descriptive fields are optional and
// omitted from the persisted JSON when unset.
type CatalogItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location,omitempty"`
	Price          float64  `json:"price,omitempty"`
	PricePerDay    float64  `json:"pricePerDay,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	CategoryLabel  string   `json:"category,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Features       []string `json:"features,omitempty"`
	Sizes          []string `json:"size,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Speciality     string   `json:"speciality,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Distance       string   `json:"distance,omitempty"`
	Elevation      string   `json:"elevation,omitempty"`
	Status         string   `json:"status,omitempty"`
	Description    string   `json:"description,omitempty"`
	Image          string   `json:"image,omitempty"`
	Available      bool     `json:"available,omitempty"`
	AvailableUnits int      `json:"availableUnits,omitempty"`
	SeedBookings   int      `json:"bookings,omitempty"`
	IsBookmarked   bool     `json:"isBookmarked,omitempty"`
	GuideCount     int      `json:"guides,omitempty"`
	Agency         string   `json:"agency,omitempty"`
	Experience     string   `json:"experience,omitempty"`
}

// UnitPrice returns the price used for booking math: the nightly price when
// set, otherwise the per-day price.
func (item CatalogItem) UnitPrice() float64 {
	if item.Price > 0 {
		return item.Price
	}
	return item.PricePerDay
}
