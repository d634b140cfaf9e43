// internal/search/rank_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripscout/internal/models"
)

func TestTypeAffinity(t *testing.T) {
	types := []string{"museum", "tourist_attraction", "restaurant"}

	assert.Equal(t, 2, TypeAffinity(models.ProfileTourist, types))
	assert.Equal(t, 1, TypeAffinity(models.ProfileLocal, types))
	assert.Zero(t, TypeAffinity(models.ProfilePro, nil))
}

func TestTypeAffinityLooseMatching(t *testing.T) {
	// "internet_cafe" contains the vocabulary word "cafe".
	assert.Equal(t, 1, TypeAffinity(models.ProfileLocal, []string{"internet_cafe"}))
	// "point" is contained in the vocabulary word "point_of_interest".
	assert.Equal(t, 1, TypeAffinity(models.ProfileTourist, []string{"point"}))
	assert.Zero(t, TypeAffinity(models.ProfileLocal, []string{"aquarium"}))
}

func TestRankUnfilteredPrefersProfileAffinity(t *testing.T) {
	results := []models.Attraction{
		{PlaceID: "plain", Types: []string{"establishment"}, Rating: 4.9, UserRatingsTotal: 9000},
		{PlaceID: "touristy", Types: []string{"museum", "tourist_attraction"}, Rating: 4.1, UserRatingsTotal: 100},
	}

	ranked := Rank(results, models.ProfileTourist, false)

	require.Len(t, ranked, 2)
	assert.Equal(t, "touristy", ranked[0].PlaceID)
	assert.Equal(t, "plain", ranked[1].PlaceID)
}

func TestRankFilteredIgnoresProfile(t *testing.T) {
	results := []models.Attraction{
		{PlaceID: "touristy", Types: []string{"museum", "tourist_attraction"}, Rating: 4.1, UserRatingsTotal: 100},
		{PlaceID: "plain", Types: []string{"establishment"}, Rating: 4.9, UserRatingsTotal: 9000},
	}

	ranked := Rank(results, models.ProfileTourist, true)

	require.Len(t, ranked, 2)
	assert.Equal(t, "plain", ranked[0].PlaceID)
}

func TestRankBreaksRatingTiesByReviewCount(t *testing.T) {
	results := []models.Attraction{
		{PlaceID: "few", Rating: 4.5, UserRatingsTotal: 10},
		{PlaceID: "many", Rating: 4.5, UserRatingsTotal: 10000},
	}

	ranked := Rank(results, models.ProfileTourist, true)

	assert.Equal(t, "many", ranked[0].PlaceID)
	assert.Equal(t, "few", ranked[1].PlaceID)
}

func TestRankStability(t *testing.T) {
	// Identical rating, review count, and zero profile affinity: the input
	// order must survive.
	results := []models.Attraction{
		{PlaceID: "first", Types: []string{"aquarium"}, Rating: 4.0, UserRatingsTotal: 50},
		{PlaceID: "second", Types: []string{"stadium"}, Rating: 4.0, UserRatingsTotal: 50},
		{PlaceID: "third", Types: []string{"casino"}, Rating: 4.0, UserRatingsTotal: 50},
	}

	for _, filtersActive := range []bool{true, false} {
		ranked := Rank(results, models.ProfileTourist, filtersActive)
		require.Len(t, ranked, 3)
		assert.Equal(t, "first", ranked[0].PlaceID)
		assert.Equal(t, "second", ranked[1].PlaceID)
		assert.Equal(t, "third", ranked[2].PlaceID)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	results := []models.Attraction{
		{PlaceID: "low", Rating: 1},
		{PlaceID: "high", Rating: 5},
	}

	Rank(results, models.ProfileTourist, true)

	assert.Equal(t, "low", results[0].PlaceID)
}
