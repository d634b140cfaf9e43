// internal/places/client.go
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripscout/internal/common/config"
	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/common/logger"
	"tripscout/internal/common/metrics"
	"tripscout/internal/models"
)

// detailsFields is the field mask requested from the details endpoint. It
// covers everything the mapper reads and nothing more.
const detailsFields = "place_id,name,formatted_address,address_components,geometry," +
	"types,rating,user_ratings_total,price_level,opening_hours,photos,website," +
	"formatted_phone_number,business_status"

// Client talks to the Google Places web service. It owns the request timeout;
// callers treat a timeout like any other provider failure.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.PlacesConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
		logger: log.WithFields(map[string]interface{}{
			"component": "places_client",
		}),
	}
}

type searchResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []models.Place `json:"results"`
}

type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       *models.Place `json:"result"`
}

// TextSearch runs a free-text query. When a place type is given, the query is
// widened with the type's words and the response post-filtered by tag, since
// the text endpoint treats the type parameter as a hint at best.
func (c *Client) TextSearch(ctx context.Context, query, placeType string) ([]models.Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewProviderBadRequestError("text search requires a non-empty query")
	}

	enhanced := query
	if placeType != "" && !strings.Contains(strings.ToLower(query), strings.ReplaceAll(placeType, "_", " ")) {
		enhanced = strings.ReplaceAll(placeType, "_", " ") + " " + query
	}

	params := url.Values{}
	params.Set("query", enhanced)
	if placeType != "" {
		params.Set("type", placeType)
	}

	results, err := c.search(ctx, "textsearch", params)
	if err != nil {
		return nil, err
	}
	if placeType == "" {
		return results, nil
	}
	return filterByType(results, placeType), nil
}

// NearbySearch runs a radius-bounded query around a coordinate.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radiusM int, placeType, keyword string) ([]models.Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radiusM))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	return c.search(ctx, "nearbysearch", params)
}

// Details fetches one place by id. A nil result with a nil error means the
// provider does not know the id.
func (c *Client) Details(ctx context.Context, placeID string) (*models.Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/details/json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues("details", "error").Inc()
		return nil, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderCalls.WithLabelValues("details", "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("provider returned HTTP %d", resp.StatusCode))
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ProviderCalls.WithLabelValues("details", "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("decode details response: %w", err))
	}

	switch body.Status {
	case "OK":
		metrics.ProviderCalls.WithLabelValues("details", "ok").Inc()
		return body.Result, nil
	case "ZERO_RESULTS", "NOT_FOUND":
		metrics.ProviderCalls.WithLabelValues("details", "ok").Inc()
		return nil, nil
	case "INVALID_REQUEST":
		metrics.ProviderCalls.WithLabelValues("details", "error").Inc()
		return nil, apperrors.NewProviderBadRequestError(body.ErrorMessage)
	default:
		metrics.ProviderCalls.WithLabelValues("details", "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("provider status %s: %s", body.Status, body.ErrorMessage))
	}
}

func (c *Client) search(ctx context.Context, endpoint string, params url.Values) ([]models.Place, error) {
	params.Set("key", c.apiKey)
	requestURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("provider returned HTTP %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ProviderCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("decode search response: %w", err))
	}

	switch body.Status {
	case "OK":
		metrics.ProviderCalls.WithLabelValues(endpoint, "ok").Inc()
		c.logger.Debug("provider search completed", map[string]interface{}{
			"endpoint": endpoint,
			"results":  len(body.Results),
		})
		return body.Results, nil
	case "ZERO_RESULTS":
		metrics.ProviderCalls.WithLabelValues(endpoint, "ok").Inc()
		return []models.Place{}, nil
	case "INVALID_REQUEST":
		metrics.ProviderCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, apperrors.NewProviderBadRequestError(body.ErrorMessage)
	default:
		metrics.ProviderCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, apperrors.NewProviderUnavailableError(fmt.Errorf("provider status %s: %s", body.Status, body.ErrorMessage))
	}
}

func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "deadline") ||
		strings.Contains(err.Error(), "Client.Timeout") {
		return apperrors.NewProviderTimeoutError()
	}
	return apperrors.NewProviderUnavailableError(err)
}

// filterByType keeps places whose type tags match the requested type loosely,
// in either containment direction.
func filterByType(results []models.Place, placeType string) []models.Place {
	want := strings.ToLower(placeType)
	out := make([]models.Place, 0, len(results))
	for _, p := range results {
		for _, tag := range p.Types {
			tag = strings.ToLower(tag)
			if strings.Contains(tag, want) || strings.Contains(want, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
