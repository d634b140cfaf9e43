// internal/store/attractions.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/common/logger"
	"tripscout/internal/models"
)

// AttractionStore persists canonical attraction records in an Elasticsearch
// index and answers geo queries over them.
type AttractionStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewAttractionStore(client *elasticsearch.Client, index string, log logger.Logger) *AttractionStore {
	return &AttractionStore{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{
			"component": "attraction_store",
			"index":     index,
		}),
	}
}

// geoLocation is the index-side coordinate shape. Elasticsearch geo_point
// fields use "lon", not "lng", so the document type cannot share the API
// GeoPoint.
type geoLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// attractionDoc is the indexed document shape. The raw provider payload is
// not persisted; the index holds only the canonical fields.
type attractionDoc struct {
	PlaceID          string               `json:"place_id"`
	Name             string               `json:"name"`
	FormattedAddress string               `json:"formatted_address"`
	Country          string               `json:"country"`
	City             string               `json:"city"`
	Category         string               `json:"category"`
	Types            []string             `json:"types"`
	Rating           float64              `json:"rating"`
	UserRatingsTotal int                  `json:"user_ratings_total"`
	PriceLevel       *int                 `json:"price_level,omitempty"`
	Location         *geoLocation         `json:"location,omitempty"`
	OpeningHours     *models.OpeningHours `json:"opening_hours,omitempty"`
	PhotoReference   string               `json:"photo_reference,omitempty"`
}

// GeoSearch returns stored attractions within radiusM of the coordinate,
// nearest first, optionally narrowed by a type tag and a free-text hint.
func (s *AttractionStore) GeoSearch(ctx context.Context, lat, lng float64, radiusM int, placeType, text string, limit int) ([]models.Attraction, error) {
	queryBody := buildGeoQuery(lat, lng, radiusM, placeType, text, limit)

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, apperrors.NewLocalStoreQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, apperrors.NewLocalStoreQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewLocalStoreQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source attractionDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewLocalStoreQueryFailedError(fmt.Errorf("decode search response: %w", err))
	}

	attractions := make([]models.Attraction, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		attractions = append(attractions, hit.Source.toAttraction())
	}

	s.logger.Debug("geo search completed", map[string]interface{}{
		"hits":     len(attractions),
		"radius_m": radiusM,
	})
	return attractions, nil
}

// Upsert indexes an attraction under its place_id, overwriting any previous
// version. It reports whether the document was newly created.
func (s *AttractionStore) Upsert(ctx context.Context, attraction models.Attraction) (bool, error) {
	if attraction.PlaceID == "" {
		return false, apperrors.NewLocalStoreWriteFailedError(fmt.Errorf("attraction has no place_id"))
	}

	doc := fromAttraction(attraction)
	body, err := json.Marshal(doc)
	if err != nil {
		return false, apperrors.NewLocalStoreWriteFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: attraction.PlaceID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return false, apperrors.NewLocalStoreWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return false, apperrors.NewLocalStoreWriteFailedError(fmt.Errorf("index returned %s", res.Status()))
	}

	var parsed struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return false, apperrors.NewLocalStoreWriteFailedError(fmt.Errorf("decode index response: %w", err))
	}
	return parsed.Result == "created", nil
}

// buildGeoQuery assembles the search body: a geo_distance filter plus
// optional type and text clauses, sorted nearest first.
func buildGeoQuery(lat, lng float64, radiusM int, placeType, text string, limit int) map[string]interface{} {
	filterClauses := []interface{}{
		map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": fmt.Sprintf("%dm", radiusM),
				"location": map[string]interface{}{
					"lat": lat,
					"lon": lng,
				},
			},
		},
	}
	mustClauses := []interface{}{}

	if placeType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"types": strings.ToLower(placeType)},
		})
	}
	if text != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name^3", "formatted_address", "city"},
				"type":   "best_fields",
			},
		})
	}

	boolQuery := map[string]interface{}{"filter": filterClauses}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}

	return map[string]interface{}{
		"size":  limit,
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{
				"_geo_distance": map[string]interface{}{
					"location": map[string]interface{}{"lat": lat, "lon": lng},
					"order":    "asc",
					"unit":     "m",
				},
			},
		},
	}
}

func fromAttraction(a models.Attraction) attractionDoc {
	doc := attractionDoc{
		PlaceID:          a.PlaceID,
		Name:             a.Name,
		FormattedAddress: a.FormattedAddress,
		Country:          a.Country,
		City:             a.City,
		Category:         a.Category,
		Types:            a.Types,
		Rating:           a.Rating,
		UserRatingsTotal: a.UserRatingsTotal,
		PriceLevel:       a.PriceLevel,
		OpeningHours:     a.OpeningHours,
		PhotoReference:   a.PhotoReference,
	}
	if a.Location != nil {
		doc.Location = &geoLocation{Lat: a.Location.Lat, Lon: a.Location.Lng}
	}
	return doc
}

func (d attractionDoc) toAttraction() models.Attraction {
	a := models.Attraction{
		PlaceID:          d.PlaceID,
		Name:             d.Name,
		FormattedAddress: d.FormattedAddress,
		Country:          d.Country,
		City:             d.City,
		Category:         d.Category,
		Types:            d.Types,
		Rating:           d.Rating,
		UserRatingsTotal: d.UserRatingsTotal,
		PriceLevel:       d.PriceLevel,
		OpeningHours:     d.OpeningHours,
		PhotoReference:   d.PhotoReference,
	}
	if d.Location != nil {
		a.Location = &models.GeoPoint{Lat: d.Location.Lat, Lng: d.Location.Lon}
	}
	return a
}
