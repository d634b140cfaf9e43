// internal/search/rank.go
package search

import (
	"sort"
	"strings"

	"tripscout/internal/models"
)

// profileTypeVocabulary maps each search persona to the place-type words that
// signal relevance for it.
var profileTypeVocabulary = map[models.Profile][]string{
	models.ProfileTourist: {
		"tourist_attraction", "point_of_interest", "museum", "art_gallery",
		"church", "park", "zoo", "amusement_park",
	},
	models.ProfileLocal: {
		"restaurant", "cafe", "bar", "park", "gym", "store",
		"shopping_mall", "supermarket", "library", "movie_theater",
	},
	models.ProfilePro: {
		"lodging", "establishment", "point_of_interest", "train_station",
		"airport", "gas_station", "bank", "atm",
	},
}

// TypeAffinity counts how many vocabulary words for the profile appear in the
// attraction's type tags. Substring containment in either direction counts:
// provider type tags vary ("cafe" vs "internet_cafe") and the loose match
// tolerates that.
func TypeAffinity(profile models.Profile, types []string) int {
	vocab := profileTypeVocabulary[profile]
	if len(vocab) == 0 || len(types) == 0 {
		return 0
	}

	score := 0
	for _, word := range vocab {
		for _, tag := range types {
			tag = strings.ToLower(tag)
			if strings.Contains(tag, word) || strings.Contains(word, tag) {
				score++
				break
			}
		}
	}
	return score
}

// Rank returns a sorted copy of the result set; it never drops elements.
// With active filters the order is plain popularity, rating then review
// count; without filters the profile's type affinity leads. The sort is
// stable so equal keys keep their merge order.
func Rank(results []models.Attraction, profile models.Profile, filtersActive bool) []models.Attraction {
	ranked := make([]models.Attraction, len(results))
	copy(ranked, results)

	if filtersActive {
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Rating != ranked[j].Rating {
				return ranked[i].Rating > ranked[j].Rating
			}
			return ranked[i].UserRatingsTotal > ranked[j].UserRatingsTotal
		})
		return ranked
	}

	type scored struct {
		att      models.Attraction
		affinity int
	}
	items := make([]scored, len(ranked))
	for i := range ranked {
		items[i] = scored{att: ranked[i], affinity: TypeAffinity(profile, ranked[i].Types)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].affinity != items[j].affinity {
			return items[i].affinity > items[j].affinity
		}
		if items[i].att.Rating != items[j].att.Rating {
			return items[i].att.Rating > items[j].att.Rating
		}
		return items[i].att.UserRatingsTotal > items[j].att.UserRatingsTotal
	})

	for i := range items {
		ranked[i] = items[i].att
	}
	return ranked
}
