// internal/models/place.go
package models

// Place is a raw place record as returned by the external provider. Field
// names follow the provider's wire format; only the fields the engine reads
// are declared, the rest of the payload is ignored on decode.
type Place struct {
	PlaceID           string              `json:"place_id"`
	Name              string              `json:"name"`
	FormattedAddress  string              `json:"formatted_address,omitempty"`
	Vicinity          string              `json:"vicinity,omitempty"`
	AddressComponents []AddressComponent  `json:"address_components,omitempty"`
	Geometry          *Geometry           `json:"geometry,omitempty"`
	Types             []string            `json:"types,omitempty"`
	Rating            float64             `json:"rating,omitempty"`
	UserRatingsTotal  int                 `json:"user_ratings_total,omitempty"`
	PriceLevel        *int                `json:"price_level,omitempty"`
	OpeningHours      *PlaceOpeningHours  `json:"opening_hours,omitempty"`
	Photos            []Photo             `json:"photos,omitempty"`
	Website           string              `json:"website,omitempty"`
	PhoneNumber       string              `json:"formatted_phone_number,omitempty"`
	BusinessStatus    string              `json:"business_status,omitempty"`
}

// AddressComponent is one structured address part with its type tags.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geometry holds the provider's location block.
type Geometry struct {
	Location *GeoPoint `json:"location,omitempty"`
}

// PlaceOpeningHours is the provider's full opening-hours payload. The mapper
// reduces it to models.OpeningHours before results leave the engine.
type PlaceOpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
	Periods     []any    `json:"periods,omitempty"`
}

// Photo is one provider photo descriptor.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}
