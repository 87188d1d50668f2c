package httpapi

// WeatherReport describes current conditions for one trekking region.
type WeatherReport struct {
	ID             string          `json:"id"`
	Location       string          `json:"location"`
	Temperature    string          `json:"temperature"`
	Condition      string          `json:"condition"`
	WindSpeed      string          `json:"windSpeed"`
	Visibility     string          `json:"visibility"`
	Humidity       string          `json:"humidity"`
	UVIndex        string          `json:"uvIndex"`
	Sunrise        string          `json:"sunrise"`
	Sunset         string          `json:"sunset"`
	Recommendation string          `json:"recommendation"`
	Forecast       []ForecastEntry `json:"forecast"`
}

// ForecastEntry is one day of the five-day outlook.
type ForecastEntry struct {
	Day       string `json:"day"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Condition string `json:"condition"`
}

// weatherReports returns the static regional weather set the dashboard shows.
// There is no upstream weather provider; the data is fixed.
func weatherReports() []WeatherReport {
	return []WeatherReport{
		{
			ID:             "W001",
			Location:       "Everest Base Camp",
			Temperature:    "-5°C",
			Condition:      "Cloudy",
			WindSpeed:      "15 km/h",
			Visibility:     "Good (8km)",
			Humidity:       "65%",
			UVIndex:        "3",
			Sunrise:        "06:45",
			Sunset:         "18:30",
			Recommendation: "Good for trekking with proper gear",
			Forecast: []ForecastEntry{
				{Day: "Today", High: "-2°C", Low: "-8°C", Condition: "Cloudy"},
				{Day: "Tomorrow", High: "1°C", Low: "-5°C", Condition: "Partly Cloudy"},
				{Day: "Day 3", High: "-1°C", Low: "-7°C", Condition: "Snow"},
				{Day: "Day 4", High: "3°C", Low: "-3°C", Condition: "Sunny"},
				{Day: "Day 5", High: "2°C", Low: "-4°C", Condition: "Cloudy"},
			},
		},
		{
			ID:             "W002",
			Location:       "Annapurna Circuit",
			Temperature:    "8°C",
			Condition:      "Sunny",
			WindSpeed:      "8 km/h",
			Visibility:     "Excellent (15km)",
			Humidity:       "45%",
			UVIndex:        "6",
			Sunrise:        "06:20",
			Sunset:         "18:45",
			Recommendation: "Perfect conditions for trekking",
			Forecast: []ForecastEntry{
				{Day: "Today", High: "12°C", Low: "4°C", Condition: "Sunny"},
				{Day: "Tomorrow", High: "14°C", Low: "6°C", Condition: "Sunny"},
				{Day: "Day 3", High: "10°C", Low: "3°C", Condition: "Partly Cloudy"},
				{Day: "Day 4", High: "8°C", Low: "1°C", Condition: "Cloudy"},
				{Day: "Day 5", High: "11°C", Low: "5°C", Condition: "Sunny"},
			},
		},
		{
			ID:             "W003",
			Location:       "Langtang Valley",
			Temperature:    "2°C",
			Condition:      "Light Rain",
			WindSpeed:      "12 km/h",
			Visibility:     "Moderate (5km)",
			Humidity:       "85%",
			UVIndex:        "2",
			Sunrise:        "06:35",
			Sunset:         "18:25",
			Recommendation: "Consider postponing trek",
			Forecast: []ForecastEntry{
				{Day: "Today", High: "5°C", Low: "-1°C", Condition: "Rain"},
				{Day: "Tomorrow", High: "3°C", Low: "-2°C", Condition: "Rain"},
				{Day: "Day 3", High: "7°C", Low: "1°C", Condition: "Cloudy"},
				{Day: "Day 4", High: "9°C", Low: "3°C", Condition: "Partly Cloudy"},
				{Day: "Day 5", High: "11°C", Low: "5°C", Condition: "Sunny"},
			},
		},
		{
			ID:             "W004",
			Location:       "Manaslu Circuit",
			Temperature:    "6°C",
			Condition:      "Partly Cloudy",
			WindSpeed:      "10 km/h",
			Visibility:     "Good (10km)",
			Humidity:       "55%",
			UVIndex:        "4",
			Sunrise:        "06:25",
			Sunset:         "18:35",
			Recommendation: "Good conditions for experienced trekkers",
			Forecast: []ForecastEntry{
				{Day: "Today", High: "9°C", Low: "2°C", Condition: "Partly Cloudy"},
				{Day: "Tomorrow", High: "7°C", Low: "1°C", Condition: "Cloudy"},
				{Day: "Day 3", High: "11°C", Low: "4°C", Condition: "Sunny"},
				{Day: "Day 4", High: "8°C", Low: "2°C", Condition: "Partly Cloudy"},
				{Day: "Day 5", High: "6°C", Low: "0°C", Condition: "Cloudy"},
			},
		},
	}
}
