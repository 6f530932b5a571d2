package weather

import "strconv"

// Condition is a normalized weather condition code served to clients in
// place of the source site's localized phrases.
type Condition string

const (
	ConditionClear          Condition = "clear"
	ConditionPartlyCloudy   Condition = "partly-cloudy"
	ConditionCloudyAndClear Condition = "cloudy-and-clear"
	ConditionCloudy         Condition = "cloudy"
	ConditionOvercast       Condition = "overcast"
	ConditionLightRain      Condition = "light-rain"
	ConditionRain           Condition = "rain"
	ConditionHeavyRain      Condition = "heavy-rain"
	ConditionThunderstorm   Condition = "thunderstorm"
	ConditionLightSnow      Condition = "light-snow"
	ConditionSnow           Condition = "snow"
	ConditionHeavySnow      Condition = "heavy-snow"
	ConditionFog            Condition = "fog"
	ConditionHaze           Condition = "haze"
	ConditionDrizzle        Condition = "drizzle"
	ConditionHail           Condition = "hail"
	ConditionUnknown        Condition = "unknown"
)

// Coordinates identifies the place a request or cache entry pertains to.
// The values are opaque identifiers: no range validation is performed and
// any pair of floats forms a valid key.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this pair in caches.
func (c Coordinates) Key() string {
	return formatCoord(c.Lat) + ":" + formatCoord(c.Lon)
}

// formatCoord renders a coordinate in its shortest round-trip decimal form,
// the same form substituted into upstream URLs.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CurrentConditions is the record extracted from the main page's fact block.
// Every field is independently optional: nil marks a fragment missing from
// the page, not an error.
type CurrentConditions struct {
	Temperature      *string    `json:"temperature"`
	Condition        *Condition `json:"condition"`
	ConditionText    *string    `json:"condition_text"`
	FeelsLike        *string    `json:"feels_like"`
	YesterdayFull    *string    `json:"yesterday_full"`
	YesterdayShort   *string    `json:"yesterday_short"`
	Wind             *string    `json:"wind"`
	Pressure         *string    `json:"pressure"`
	Humidity         *string    `json:"humidity"`
	WaterTemperature *string    `json:"water_temperature"`
}

// DayForecast is a single calendar day from the month view. Title prefers
// the date link's accessible label and falls back to its visible text.
type DayForecast struct {
	Title            *string `json:"title"`
	Label            *string `json:"label"`
	DayTemp          *string `json:"day_temp"`
	NightTemp        *string `json:"night_temp"`
	FeelsLike        *string `json:"feels_like"`
	Pressure         *string `json:"pressure"`
	Humidity         *string `json:"humidity"`
	Wind             *string `json:"wind"`
	WaterTemperature *string `json:"water_temperature"`
}

// MonthForecast holds the month view's day records in document
// (calendar) order.
type MonthForecast []DayForecast
