// internal/search/filter.go
package search

import (
	"strings"

	"tripscout/internal/models"
)

// ApplyFilters applies the explicit attribute filters from the request to a
// result set, preserving order. Filters are conjunctive: a record must pass
// every active filter to survive.
func ApplyFilters(results []models.Attraction, p Params) []models.Attraction {
	if !p.HasFilters() {
		return results
	}

	out := make([]models.Attraction, 0, len(results))
	for _, a := range results {
		if len(p.Categories) > 0 && !matchesCategory(a, p.Categories) {
			continue
		}
		if p.MinRating > 0 && a.Rating < p.MinRating {
			continue
		}
		if p.MaxPrice != nil && a.PriceLevel != nil && *a.PriceLevel > *p.MaxPrice {
			// Records with no price level pass: absence of the attribute is
			// not evidence the place is expensive.
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesCategory reports whether any requested category token matches any of
// the record's type tags. Matching is case-insensitive and loose in both
// directions: "museum" matches "art_museum" and "art_museum" matches "museum".
func matchesCategory(a models.Attraction, categories []string) bool {
	for _, want := range categories {
		for _, tag := range a.Types {
			tag = strings.ToLower(tag)
			if strings.Contains(tag, want) || strings.Contains(want, tag) {
				return true
			}
		}
	}
	return false
}
