// internal/models/attraction.go
package models

// Profile is the caller-declared search persona that biases ranking.
type Profile string

const (
	ProfileTourist Profile = "tourist"
	ProfileLocal   Profile = "local"
	ProfilePro     Profile = "pro"
)

// ParseProfile normalizes a raw profile string, defaulting to tourist.
func ParseProfile(s string) Profile {
	switch Profile(s) {
	case ProfileLocal:
		return ProfileLocal
	case ProfilePro:
		return ProfilePro
	default:
		return ProfileTourist
	}
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours is the reduced opening-hours shape exposed to clients.
// Everything beyond open_now and weekday_text is dropped on purpose to keep
// responses small.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Attraction is the canonical place shape the search engine operates on.
// PlaceID is the stable provider identifier and the dedup key across sources.
type Attraction struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Country          string        `json:"country"`
	City             string        `json:"city"`
	Category         string        `json:"category"`
	Types            []string      `json:"types"`
	Rating           float64       `json:"rating"`
	UserRatingsTotal int           `json:"user_ratings_total"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Location         *GeoPoint     `json:"location,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	PhotoReference   string        `json:"photo_reference,omitempty"`
	Raw              *Place        `json:"raw_data,omitempty"`
}
