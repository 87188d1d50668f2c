package catalog

import "github.com/trekora/trekdesk/internal/model"

// Default catalog entries are seed data baked into the application. Every
// accessor returns fresh copies so callers can never mutate the seeds.

func defaultHotels() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID:          "H001",
			Name:        "Mountain View Lodge",
			Location:    "Everest Base Camp",
			Price:       150,
			Rating:      4.5,
			Image:       "/placeholder.svg",
			Amenities:   []string{"WiFi", "Parking", "Restaurant", "Gym"},
			Description: "Luxury lodge with stunning mountain views and excellent facilities for trekkers.",
			Available:   true,
		},
		{
			ID:          "H002",
			Name:        "Himalayan Resort",
			Location:    "Annapurna",
			Price:       120,
			Rating:      4.2,
			Image:       "/placeholder.svg",
			Amenities:   []string{"WiFi", "Restaurant", "Spa"},
			Description: "Comfortable resort perfect for relaxation after long trekking days.",
			Available:   true,
		},
		{
			ID:          "H003",
			Name:        "Sherpa Inn",
			Location:    "Langtang Valley",
			Price:       80,
			Rating:      4.0,
			Image:       "/placeholder.svg",
			Amenities:   []string{"WiFi", "Restaurant"},
			Description: "Cozy inn run by local Sherpa family with authentic mountain hospitality.",
			Available:   true,
		},
		{
			ID:          "H004",
			Name:        "Alpine Retreat",
			Location:    "Everest Base Camp",
			Price:       200,
			Rating:      4.8,
			Image:       "/placeholder.svg",
			Amenities:   []string{"WiFi", "Parking", "Restaurant", "Gym", "Spa"},
			Description: "Premium alpine retreat with world-class amenities and service.",
			Available:   true,
		},
	}
}

func defaultEquipment() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID:             "E001",
			Name:           "Professional Trekking Boots",
			CategoryLabel:  "Footwear",
			Price:          15,
			Rating:         4.8,
			Description:    "High-quality waterproof trekking boots suitable for all terrain types.",
			Features:       []string{"Waterproof", "Breathable", "Ankle Support", "Vibram Sole"},
			AvailableUnits: 10,
			Sizes:          []string{"7", "8", "9", "10", "11", "12"},
			Brand:          "Salomon",
		},
		{
			ID:             "E002",
			Name:           "4-Season Sleeping Bag",
			CategoryLabel:  "Sleeping",
			Price:          12,
			Rating:         4.6,
			Description:    "Warm sleeping bag rated for extreme cold weather conditions.",
			Features:       []string{"Down Filled", "-20°C Rating", "Compression Sack", "Water Resistant"},
			AvailableUnits: 8,
			Brand:          "The North Face",
		},
		{
			ID:             "E003",
			Name:           "Expedition Backpack 65L",
			CategoryLabel:  "Bags",
			Price:          18,
			Rating:         4.7,
			Description:    "Large capacity backpack perfect for multi-day trekking adventures.",
			Features:       []string{"65L Capacity", "Rain Cover", "Multiple Pockets", "Adjustable Straps"},
			AvailableUnits: 12,
			Brand:          "Osprey",
		},
		{
			ID:             "E004",
			Name:           "Trekking Poles (Pair)",
			CategoryLabel:  "Accessories",
			Price:          8,
			Rating:         4.5,
			Description:    "Lightweight adjustable trekking poles for stability and support.",
			Features:       []string{"Adjustable Height", "Cork Grips", "Carbide Tips", "Collapsible"},
			AvailableUnits: 15,
			Brand:          "Black Diamond",
		},
		{
			ID:             "E005",
			Name:           "Mountain Tent 2-Person",
			CategoryLabel:  "Shelter",
			Price:          25,
			Rating:         4.9,
			Description:    "Durable 2-person tent designed for harsh mountain conditions.",
			Features:       []string{"4-Season", "Vestibule", "Easy Setup", "Wind Resistant"},
			AvailableUnits: 6,
			Brand:          "MSR",
		},
		{
			ID:             "E006",
			Name:           "Down Jacket",
			CategoryLabel:  "Clothing",
			Price:          20,
			Rating:         4.7,
			Description:    "Ultra-light down jacket for high altitude warmth.",
			Features:       []string{"800 Fill Down", "Packable", "Water Resistant", "Ultra Light"},
			AvailableUnits: 14,
			Sizes:          []string{"S", "M", "L", "XL"},
			Brand:          "Patagonia",
		},
		{
			ID:             "E007",
			Name:           "Climbing Harness",
			CategoryLabel:  "Safety",
			Price:          10,
			Rating:         4.6,
			Description:    "Professional climbing harness for technical routes.",
			Features:       []string{"Adjustable", "Gear Loops", "Comfort Padding", "Belay Loop"},
			AvailableUnits: 9,
			Sizes:          []string{"S", "M", "L"},
			Brand:          "Petzl",
		},
		{
			ID:             "E008",
			Name:           "Headlamp",
			CategoryLabel:  "Accessories",
			Price:          5,
			Rating:         4.4,
			Description:    "High-powered LED headlamp for early morning starts.",
			Features:       []string{"300 Lumens", "Rechargeable", "Red Light Mode", "IPX4 Rated"},
			AvailableUnits: 20,
			Brand:          "Petzl",
		},
	}
}

func defaultRoutes() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID:           "TR001",
			Name:         "Everest Base Camp Trek",
			Difficulty:   "Hard",
			Duration:     "14 days",
			Distance:     "130 km",
			Elevation:    "5,364m",
			Status:       "active",
			SeedBookings: 23,
			Description:  "The classic trek to Everest Base Camp, offering stunning views of the world's highest peak and surrounding mountains.",
		},
		{
			ID:           "TR002",
			Name:         "Annapurna Circuit",
			Difficulty:   "Moderate",
			Duration:     "21 days",
			Distance:     "230 km",
			Elevation:    "5,416m",
			Status:       "active",
			SeedBookings: 18,
			Description:  "A complete circuit around the Annapurna massif, showcasing diverse landscapes and cultures.",
			IsBookmarked: true,
		},
		{
			ID:          "TR003",
			Name:        "Langtang Valley Trek",
			Difficulty:  "Easy",
			Duration:    "7 days",
			Distance:    "65 km",
			Elevation:   "3,870m",
			Status:      "maintenance",
			Description: "A beautiful valley trek close to Kathmandu, known for its scenic beauty and cultural richness.",
		},
		{
			ID:          "TR004",
			Name:        "Manaslu Circuit Trek",
			Difficulty:  "Hard",
			Duration:    "18 days",
			Distance:    "177 km",
			Elevation:   "5,106m",
			Status:      "active",
			Description: "A remote and challenging trek around the eighth highest mountain in the world.",
		},
	}
}

func defaultAgencies() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID:          "AG001",
			Name:        "Himalayan Adventures",
			Location:    "Kathmandu",
			Rating:      4.8,
			GuideCount:  15,
			Speciality:  "High Altitude Treks",
			Status:      "active",
			PricePerDay: 120,
			Image:       "/placeholder.svg",
			Description: "Leading trekking agency with 20+ years of experience in high altitude expeditions.",
			Languages:   []string{"English", "Nepali", "Hindi", "Chinese"},
		},
		{
			ID:          "AG002",
			Name:        "Mountain Explorer Co.",
			Location:    "Pokhara",
			Rating:      4.6,
			GuideCount:  12,
			Speciality:  "Cultural Treks",
			Status:      "active",
			PricePerDay: 100,
			Image:       "/placeholder.svg",
			Description: "Specialized in cultural trekking experiences and local community interaction.",
			Languages:   []string{"English", "Nepali", "German"},
		},
	}
}

func defaultGuides() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID:          "GD001",
			Name:        "Pemba Sherpa",
			Agency:      "Himalayan Adventures",
			Experience:  "12 years",
			Speciality:  "High Altitude",
			Rating:      4.9,
			Languages:   []string{"English", "Nepali", "Hindi"},
			Status:      "available",
			PricePerDay: 80,
			Image:       "/placeholder.svg",
			Description: "Experienced high altitude guide with multiple Everest summits.",
		},
		{
			ID:          "GD002",
			Name:        "Tenzin Norbu",
			Agency:      "Mountain Explorer Co.",
			Experience:  "8 years",
			Speciality:  "Cultural Tours",
			Rating:      4.7,
			Languages:   []string{"English", "Nepali"},
			Status:      "available",
			PricePerDay: 70,
			Image:       "/placeholder.svg",
			Description: "Cultural trek specialist with deep knowledge of local traditions.",
		},
	}
}

var defaultsByCategory = map[model.CatalogCategory]func() []model.CatalogItem{
	model.CategoryHotels:    defaultHotels,
	model.CategoryEquipment: defaultEquipment,
	model.CategoryRoutes:    defaultRoutes,
	model.CategoryAgencies:  defaultAgencies,
	model.CategoryGuides:    defaultGuides,
}

// Defaults returns the built-in seed list for a category.
func Defaults(category model.CatalogCategory) []model.CatalogItem {
	factory, known := defaultsByCategory[category]
	if !known {
		return nil
	}
	return factory()
}
