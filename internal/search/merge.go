// internal/search/merge.go
package search

import "tripscout/internal/models"

// Merge combines provider and local-store result sets, deduplicating by
// place_id. Provider results come first in their original order; local-only
// records follow in theirs. When both sources carry the same id the provider
// copy wins, it is the fresher one. Distance ordering is the ranking stage's
// job, not the merger's.
func Merge(providerResults, localResults []models.Attraction) []models.Attraction {
	merged := make([]models.Attraction, 0, len(providerResults)+len(localResults))
	seen := make(map[string]bool, len(providerResults))

	for _, a := range providerResults {
		if a.PlaceID != "" && seen[a.PlaceID] {
			continue
		}
		seen[a.PlaceID] = true
		merged = append(merged, a)
	}

	for _, a := range localResults {
		if a.PlaceID != "" && seen[a.PlaceID] {
			continue
		}
		seen[a.PlaceID] = true
		merged = append(merged, a)
	}

	return merged
}
