// internal/search/orchestrator.go
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/common/logger"
	"tripscout/internal/common/metrics"
	"tripscout/internal/models"
)

// defaultRadiusM is the nearby-search radius used when the caller supplies
// coordinates without a radius.
const defaultRadiusM = 5000

// ProviderGateway is the external places API surface the orchestrator
// consumes. Calls are timeout-bounded by the gateway itself; the orchestrator
// treats any error as an empty contribution.
type ProviderGateway interface {
	TextSearch(ctx context.Context, query, placeType string) ([]models.Place, error)
	NearbySearch(ctx context.Context, lat, lng float64, radiusM int, placeType, keyword string) ([]models.Place, error)
	Details(ctx context.Context, placeID string) (*models.Place, error)
}

// LocalStore is the document-store surface the orchestrator consumes.
type LocalStore interface {
	GeoSearch(ctx context.Context, lat, lng float64, radiusM int, placeType, text string, limit int) ([]models.Attraction, error)
	Upsert(ctx context.Context, attraction models.Attraction) (bool, error)
}

// Orchestrator sequences one search pass: strategy selection, gateway calls,
// merge, filter, rank, cache. Passes are independent; the cache is the only
// shared mutable state and is owned by whoever constructed it, not by a
// package-level singleton.
type Orchestrator struct {
	provider ProviderGateway
	store    LocalStore
	cache    Cache
	log      logger.Logger

	defaultLimit    int
	localStoreLimit int
}

// Options bounds the orchestrator's result sizes. Zero values fall back to
// the reference limits.
type Options struct {
	DefaultLimit    int
	LocalStoreLimit int
}

func NewOrchestrator(provider ProviderGateway, store LocalStore, cache Cache, log logger.Logger, opts Options) *Orchestrator {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.LocalStoreLimit <= 0 {
		opts.LocalStoreLimit = 10
	}
	return &Orchestrator{
		provider:        provider,
		store:           store,
		cache:           cache,
		log:             log,
		defaultLimit:    opts.DefaultLimit,
		localStoreLimit: opts.LocalStoreLimit,
	}
}

// Search runs the full decision tree for one query. It never fails for "no
// results" or source unavailability; the only error it returns is malformed
// input, which ParseParams reports before this point for HTTP callers.
func (o *Orchestrator) Search(ctx context.Context, params Params) ([]models.Attraction, error) {
	start := time.Now()
	p := params.Normalize(o.defaultLimit)
	fingerprint := p.Fingerprint()

	if cached, ok, err := o.cache.Lookup(ctx, fingerprint); err != nil {
		// A broken cache backend degrades to a miss.
		o.log.Warn("cache lookup failed", map[string]interface{}{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
	} else if ok {
		// A cached result is authoritative for its TTL window: no
		// re-filtering, no re-ranking.
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		metrics.SearchesTotal.WithLabelValues("cached").Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	hasFilters := p.HasFilters()
	placeType := o.placeTypeHint(p, hasFilters)

	var (
		results  []models.Attraction
		strategy string
	)

	switch {
	case p.Text == "" && !p.HasLocation() && p.Country == "":
		// Nothing to search on is not an error, just an empty answer.
		strategy = "empty"
		results = []models.Attraction{}

	case p.Text == "" && !p.HasLocation():
		strategy = "country_popularity"
		results = o.fetchCountryPopular(ctx, p, placeType)

	case p.HasLocation():
		strategy = "nearby"
		results = o.fetchNearby(ctx, p, placeType)

	case isBareCountryQuery(p, hasFilters):
		// A lone token with no other context reads as a country name.
		strategy = "country_popularity"
		redirected := p
		redirected.Country = p.Text
		redirected.Text = ""
		results = o.fetchCountryPopular(ctx, redirected, placeType)

	default:
		strategy = "text"
		results = o.fetchByText(ctx, p, placeType, hasFilters)
	}

	results = ApplyFilters(results, p)
	// A requested filter that matched nothing still counts as "filters were
	// requested" for ranking purposes.
	results = Rank(results, p.Profile, hasFilters)

	if p.Limit > 0 && len(results) > p.Limit {
		results = results[:p.Limit]
	}

	if err := o.cache.Store(ctx, fingerprint, results); err != nil {
		o.log.Warn("cache store failed", map[string]interface{}{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
	}

	metrics.SearchesTotal.WithLabelValues(strategy).Inc()
	metrics.SearchDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	o.log.Debug("search pass complete", map[string]interface{}{
		"strategy": strategy,
		"results":  len(results),
		"filters":  hasFilters,
	})
	return results, nil
}

// PopularByCountry answers "what is worth seeing in this country" by routing
// through Search, so the result shares the same cache and ranking path as an
// equivalent query-parameter request.
func (o *Orchestrator) PopularByCountry(ctx context.Context, country string, limit int, profile models.Profile, city string) ([]models.Attraction, error) {
	return o.Search(ctx, Params{
		Country: country,
		City:    city,
		Profile: profile,
		Limit:   limit,
	})
}

// GetByPlaceID resolves one place through the provider's details endpoint.
// An id the provider does not know yields a typed not-found error.
func (o *Orchestrator) GetByPlaceID(ctx context.Context, placeID string) (*models.Attraction, error) {
	if placeID == "" {
		return nil, apperrors.NewInvalidSearchParamsError("place_id must not be empty")
	}

	place, err := o.provider.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, apperrors.NewPlaceNotFoundError(placeID)
	}

	attraction := MapPlace(place, "")
	return &attraction, nil
}

// SimilarSuggestions finds places resembling the given one: same primary
// type, near the same spot, sharing the leading name token when no location
// is available. A base place that cannot be resolved surfaces as a typed
// unresolvable-reference error rather than a silent empty list.
func (o *Orchestrator) SimilarSuggestions(ctx context.Context, placeID string, limit int) ([]models.Attraction, error) {
	if limit <= 0 {
		limit = o.defaultLimit
	}

	base, err := o.provider.Details(ctx, placeID)
	if err != nil {
		return nil, apperrors.NewUnresolvableReferenceError(placeID, err)
	}
	if base == nil {
		return nil, apperrors.NewUnresolvableReferenceError(placeID, nil)
	}

	placeType := ""
	if len(base.Types) > 0 {
		placeType = base.Types[0]
	}

	var places []models.Place
	if base.Geometry != nil && base.Geometry.Location != nil {
		loc := base.Geometry.Location
		places, err = o.provider.NearbySearch(ctx, loc.Lat, loc.Lng, defaultRadiusM, placeType, "")
	} else {
		query := strings.ReplaceAll(placeType, "_", " ")
		if token := firstToken(base.Name); token != "" {
			query = token + " " + query
		}
		places, err = o.provider.TextSearch(ctx, strings.TrimSpace(query), placeType)
	}
	if err != nil {
		o.log.Warn("similar suggestions lookup failed", map[string]interface{}{
			"place_id": placeID,
			"error":    err.Error(),
		})
		return []models.Attraction{}, nil
	}

	suggestions := make([]models.Attraction, 0, limit)
	for i := range places {
		if places[i].PlaceID == base.PlaceID {
			continue
		}
		suggestions = append(suggestions, MapPlace(&places[i], ""))
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

// SyncFromProvider pulls a country's popular places from the provider,
// resolves each through the details endpoint, and upserts them into the
// local store. It returns how many records were written and how many the
// provider reported.
func (o *Orchestrator) SyncFromProvider(ctx context.Context, country string, limit int) (synced, totalFound int, err error) {
	if country == "" {
		return 0, 0, apperrors.NewInvalidSearchParamsError("country must not be empty")
	}
	if limit <= 0 {
		limit = o.defaultLimit
	}

	places, err := o.provider.TextSearch(ctx, countryPopularQuery(country, "", models.ProfileTourist, ""), "")
	if err != nil {
		return 0, 0, err
	}
	totalFound = len(places)

	for i := range places {
		if synced == limit {
			break
		}

		detailed, err := o.provider.Details(ctx, places[i].PlaceID)
		if err != nil || detailed == nil {
			// A place that vanished between listing and detail fetch is
			// skipped, not fatal to the batch.
			o.log.Warn("sync detail fetch failed", map[string]interface{}{
				"place_id": places[i].PlaceID,
				"country":  country,
			})
			continue
		}

		if _, err := o.store.Upsert(ctx, MapPlace(detailed, country)); err != nil {
			o.log.Warn("sync upsert failed", map[string]interface{}{
				"place_id": detailed.PlaceID,
				"error":    err.Error(),
			})
			continue
		}
		synced++
	}

	o.log.Info("provider sync complete", map[string]interface{}{
		"country": country,
		"synced":  synced,
		"found":   totalFound,
	})
	return synced, totalFound, nil
}

// placeTypeHint resolves the provider type hint: the first requested
// category when filtering by category, else the tourist default when no
// filters constrain the query.
func (o *Orchestrator) placeTypeHint(p Params, hasFilters bool) string {
	if len(p.Categories) > 0 {
		return p.Categories[0]
	}
	if !hasFilters && p.Profile == models.ProfileTourist {
		return "tourist_attraction"
	}
	return ""
}

// fetchCountryPopular issues a locale-scoped text search. A requested
// category shapes the query directly; otherwise the profile picks the
// flavor, with the type hint still narrowing the provider call.
func (o *Orchestrator) fetchCountryPopular(ctx context.Context, p Params, placeType string) []models.Attraction {
	categoryHint := ""
	if len(p.Categories) > 0 {
		categoryHint = p.Categories[0]
	}
	query := countryPopularQuery(p.Country, p.City, p.Profile, categoryHint)

	places, err := o.provider.TextSearch(ctx, query, placeType)
	if err != nil {
		o.logSourceFailure("provider", err, map[string]interface{}{"query": query})
		return []models.Attraction{}
	}
	return MapPlaces(places, p.Country)
}

// fetchNearby runs the provider nearby search and the local-store geo search
// in parallel and merges them. A failed branch contributes an empty slice
// and never cancels the other.
func (o *Orchestrator) fetchNearby(ctx context.Context, p Params, placeType string) []models.Attraction {
	radius := p.RadiusM
	if radius <= 0 {
		radius = defaultRadiusM
	}

	var (
		wg           sync.WaitGroup
		providerHits []models.Attraction
		localHits    []models.Attraction
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		places, err := o.provider.NearbySearch(ctx, *p.Lat, *p.Lng, radius, placeType, p.Text)
		if err != nil {
			o.logSourceFailure("provider", err, map[string]interface{}{
				"lat": *p.Lat, "lng": *p.Lng, "radius_m": radius,
			})
			return
		}
		providerHits = MapPlaces(places, p.Country)
	}()
	go func() {
		defer wg.Done()
		hits, err := o.store.GeoSearch(ctx, *p.Lat, *p.Lng, radius, placeType, p.Text, o.localStoreLimit)
		if err != nil {
			o.logSourceFailure("local_store", err, map[string]interface{}{
				"lat": *p.Lat, "lng": *p.Lng, "radius_m": radius,
			})
			metrics.LocalStoreQueries.WithLabelValues("error").Inc()
			return
		}
		metrics.LocalStoreQueries.WithLabelValues("ok").Inc()
		localHits = hits
	}()
	wg.Wait()

	// The local contribution is bounded to keep merge cost flat.
	if len(localHits) > o.localStoreLimit {
		localHits = localHits[:o.localStoreLimit]
	}
	return Merge(providerHits, localHits)
}

// fetchByText issues a provider text search, widening the query with locale
// context and profile flavor when no explicit filters narrow it.
func (o *Orchestrator) fetchByText(ctx context.Context, p Params, placeType string, hasFilters bool) []models.Attraction {
	query := p.Text
	if !hasFilters {
		if locale := localeSuffix(p.City, p.Country); locale != "" {
			query += " in " + locale
		}
		switch p.Profile {
		case models.ProfileLocal:
			query += " local favorites"
		case models.ProfilePro:
			query += " business"
		}
	}

	places, err := o.provider.TextSearch(ctx, query, placeType)
	if err != nil {
		o.logSourceFailure("provider", err, map[string]interface{}{"query": query})
		return []models.Attraction{}
	}
	return MapPlaces(places, p.Country)
}

func (o *Orchestrator) logSourceFailure(source string, err error, fields map[string]interface{}) {
	fields["source"] = source
	fields["error"] = err.Error()
	o.log.Warn("search source failed, continuing without it", fields)
}

// isBareCountryQuery reports whether the text reads as a lone country name:
// a single token with no locale context and no filters.
func isBareCountryQuery(p Params, hasFilters bool) bool {
	return !hasFilters &&
		p.Country == "" && p.City == "" &&
		p.Text != "" && !strings.ContainsAny(p.Text, " \t")
}

// countryPopularQuery builds the locale-scoped provider query. A category
// hint takes precedence; otherwise the profile picks the flavor.
func countryPopularQuery(country, city string, profile models.Profile, placeType string) string {
	locale := localeSuffix(city, country)

	if placeType != "" {
		return strings.ReplaceAll(placeType, "_", " ") + " in " + locale
	}

	switch profile {
	case models.ProfileLocal:
		return "local favorites restaurants cafes in " + locale
	case models.ProfilePro:
		return "business hotels airports train stations in " + locale
	default:
		return "tourist attractions in " + locale
	}
}

func localeSuffix(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
