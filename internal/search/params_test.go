// internal/search/params_test.go
package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/models"
)

func TestParseParams(t *testing.T) {
	values := url.Values{}
	values.Set("q", "eiffel tower")
	values.Set("country", "France")
	values.Set("city", "Paris")
	values.Set("categories", "museum, park")
	values.Set("min_rating", "4.2")
	values.Set("max_price_level", "2")
	values.Set("lat", "48.85")
	values.Set("lng", "2.35")
	values.Set("radius_m", "2000")
	values.Set("limit", "15")
	values.Set("profile", "local")

	p, err := ParseParams(values)
	require.NoError(t, err)

	assert.Equal(t, "eiffel tower", p.Text)
	assert.Equal(t, "France", p.Country)
	assert.Equal(t, "Paris", p.City)
	assert.Equal(t, []string{"museum", "park"}, p.Categories)
	assert.Equal(t, 4.2, p.MinRating)
	require.NotNil(t, p.MaxPrice)
	assert.Equal(t, 2, *p.MaxPrice)
	require.NotNil(t, p.Lat)
	assert.Equal(t, 48.85, *p.Lat)
	require.NotNil(t, p.Lng)
	assert.Equal(t, 2.35, *p.Lng)
	assert.Equal(t, 2000, p.RadiusM)
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, models.ProfileLocal, p.Profile)
}

func TestParseParamsMalformedNumerics(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"rating", "min_rating", "high"},
		{"price", "max_price_level", "cheap"},
		{"latitude", "lat", "north"},
		{"radius", "radius_m", "wide"},
		{"limit", "limit", "many"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			if tc.key == "lat" {
				values.Set("lng", "2.35")
			}
			values.Set(tc.key, tc.value)

			_, err := ParseParams(values)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidSearchParams))
		})
	}
}

func TestNormalize(t *testing.T) {
	ceiling := 7
	p := Params{
		Text:       "  kyoto temples  ",
		Country:    " Japan ",
		Categories: []string{" Museum ", "PARK", ""},
		MinRating:  -1,
		MaxPrice:   &ceiling,
	}

	n := p.Normalize(20)

	assert.Equal(t, "kyoto temples", n.Text)
	assert.Equal(t, "Japan", n.Country)
	assert.Equal(t, []string{"museum", "park"}, n.Categories)
	assert.Zero(t, n.MinRating)
	// A ceiling at or above the scale maximum filters nothing.
	assert.Nil(t, n.MaxPrice)
	assert.Equal(t, models.ProfileTourist, n.Profile)
	assert.Equal(t, 20, n.Limit)
}

func TestFingerprintDeterminism(t *testing.T) {
	a := Params{Text: "ramen", Country: "Japan", Profile: models.ProfileLocal, Limit: 10}
	b := Params{Text: "ramen", Country: "Japan", Profile: models.ProfileLocal, Limit: 10}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Text = "sushi"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestHasFilters(t *testing.T) {
	ceiling := 1

	assert.False(t, Params{}.HasFilters())
	assert.False(t, Params{Text: "anything", Country: "France"}.HasFilters())
	assert.True(t, Params{Categories: []string{"museum"}}.HasFilters())
	assert.True(t, Params{MinRating: 4}.HasFilters())
	assert.True(t, Params{MaxPrice: &ceiling}.HasFilters())
}
