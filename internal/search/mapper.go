// internal/search/mapper.go
package search

import (
	"tripscout/internal/models"
)

// MapPlace maps a raw provider place record into the canonical attraction
// shape. It is pure and total: missing fields degrade to zero values, never
// to an error. Country and city come from structured address components when
// present, else from the caller-supplied hint.
func MapPlace(place *models.Place, countryHint string) models.Attraction {
	if place == nil {
		return models.Attraction{}
	}

	country, city := "", ""
	for _, comp := range place.AddressComponents {
		if country == "" && containsTag(comp.Types, "country") {
			country = comp.LongName
		}
		if city == "" && (containsTag(comp.Types, "locality") || containsTag(comp.Types, "postal_town")) {
			city = comp.LongName
		}
	}
	if country == "" {
		country = countryHint
	}

	address := place.FormattedAddress
	if address == "" {
		address = place.Vicinity
	}

	category := ""
	if len(place.Types) > 0 {
		category = place.Types[0]
	}

	a := models.Attraction{
		PlaceID:          place.PlaceID,
		Name:             place.Name,
		FormattedAddress: address,
		Country:          country,
		City:             city,
		Category:         category,
		Types:            place.Types,
		Rating:           place.Rating,
		UserRatingsTotal: place.UserRatingsTotal,
		PriceLevel:       place.PriceLevel,
		Raw:              place,
	}

	if place.Geometry != nil && place.Geometry.Location != nil {
		loc := *place.Geometry.Location
		a.Location = &loc
	}

	// Opening hours are reduced to open_now and weekday_text; the rest of the
	// provider payload (periods, special descriptors) is dropped to keep
	// responses small.
	if place.OpeningHours != nil {
		a.OpeningHours = &models.OpeningHours{
			OpenNow:     place.OpeningHours.OpenNow,
			WeekdayText: place.OpeningHours.WeekdayText,
		}
	}

	if len(place.Photos) > 0 {
		a.PhotoReference = place.Photos[0].PhotoReference
	}

	return a
}

// MapPlaces maps a provider result list, preserving order.
func MapPlaces(places []models.Place, countryHint string) []models.Attraction {
	out := make([]models.Attraction, 0, len(places))
	for i := range places {
		out = append(out, MapPlace(&places[i], countryHint))
	}
	return out
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
