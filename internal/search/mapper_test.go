// internal/search/mapper_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripscout/internal/models"
)

func louvrePlace() *models.Place {
	openNow := true
	price := 2
	return &models.Place{
		PlaceID:          "louvre-1",
		Name:             "Louvre Museum",
		FormattedAddress: "Rue de Rivoli, 75001 Paris, France",
		AddressComponents: []models.AddressComponent{
			{LongName: "Paris", ShortName: "Paris", Types: []string{"locality", "political"}},
			{LongName: "France", ShortName: "FR", Types: []string{"country", "political"}},
		},
		Geometry:         &models.Geometry{Location: &models.GeoPoint{Lat: 48.8606, Lng: 2.3376}},
		Types:            []string{"museum", "tourist_attraction", "point_of_interest"},
		Rating:           4.7,
		UserRatingsTotal: 250000,
		PriceLevel:       &price,
		OpeningHours: &models.PlaceOpeningHours{
			OpenNow:     &openNow,
			WeekdayText: []string{"Monday: 9:00 AM – 6:00 PM"},
			Periods:     []any{map[string]any{"open": "0900"}},
		},
		Photos: []models.Photo{{PhotoReference: "photo-abc", Width: 400}},
	}
}

func TestMapPlace(t *testing.T) {
	a := MapPlace(louvrePlace(), "")

	assert.Equal(t, "louvre-1", a.PlaceID)
	assert.Equal(t, "Louvre Museum", a.Name)
	assert.Equal(t, "France", a.Country)
	assert.Equal(t, "Paris", a.City)
	assert.Equal(t, "museum", a.Category)
	assert.Equal(t, 4.7, a.Rating)
	assert.Equal(t, 250000, a.UserRatingsTotal)
	require.NotNil(t, a.PriceLevel)
	assert.Equal(t, 2, *a.PriceLevel)
	require.NotNil(t, a.Location)
	assert.Equal(t, 48.8606, a.Location.Lat)
	assert.Equal(t, "photo-abc", a.PhotoReference)
	require.NotNil(t, a.Raw)
}

func TestMapPlaceReducesOpeningHours(t *testing.T) {
	a := MapPlace(louvrePlace(), "")

	require.NotNil(t, a.OpeningHours)
	require.NotNil(t, a.OpeningHours.OpenNow)
	assert.True(t, *a.OpeningHours.OpenNow)
	assert.Equal(t, []string{"Monday: 9:00 AM – 6:00 PM"}, a.OpeningHours.WeekdayText)
}

func TestMapPlaceCountryHintFallback(t *testing.T) {
	place := &models.Place{
		PlaceID:  "bare-1",
		Name:     "Some Cafe",
		Vicinity: "12 Side Street",
	}

	a := MapPlace(place, "Italy")

	assert.Equal(t, "Italy", a.Country)
	assert.Empty(t, a.City)
	assert.Equal(t, "12 Side Street", a.FormattedAddress)
	assert.Empty(t, a.Category)
	assert.Nil(t, a.Location)
	assert.Nil(t, a.OpeningHours)
}

func TestMapPlaceComponentsWinOverHint(t *testing.T) {
	a := MapPlace(louvrePlace(), "Italy")
	assert.Equal(t, "France", a.Country)
}

func TestMapPlaceIdempotent(t *testing.T) {
	place := louvrePlace()

	first := MapPlace(place, "France")
	second := MapPlace(place, "France")

	assert.Equal(t, first, second)
}

func TestMapPlaceNil(t *testing.T) {
	assert.Equal(t, models.Attraction{}, MapPlace(nil, "France"))
}

func TestMapPlacesPreservesOrder(t *testing.T) {
	placesIn := []models.Place{
		{PlaceID: "a"}, {PlaceID: "b"}, {PlaceID: "c"},
	}

	out := MapPlaces(placesIn, "")

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].PlaceID)
	assert.Equal(t, "b", out[1].PlaceID)
	assert.Equal(t, "c", out[2].PlaceID)
}
