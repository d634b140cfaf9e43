// internal/places/client_test.go
package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripscout/internal/common/config"
	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/common/logger"
	"tripscout/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.PlacesConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2000,
	}, logger.NewTestLogger(t))
	return client, server
}

func TestTextSearch(t *testing.T) {
	var gotQuery, gotType, gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotType = r.URL.Query().Get("type")
		gotKey = r.URL.Query().Get("key")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"results": []models.Place{
				{PlaceID: "m-1", Name: "City Museum", Types: []string{"museum"}},
				{PlaceID: "c-1", Name: "Corner Cafe", Types: []string{"cafe"}},
			},
		})
	})

	results, err := client.TextSearch(context.Background(), "things in paris", "museum")

	require.NoError(t, err)
	assert.Equal(t, "museum things in paris", gotQuery)
	assert.Equal(t, "museum", gotType)
	assert.Equal(t, "test-key", gotKey)

	// Off-type results are filtered out.
	require.Len(t, results, 1)
	assert.Equal(t, "m-1", results[0].PlaceID)
}

func TestTextSearchEmptyQueryRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called with an empty query")
	})

	_, err := client.TextSearch(context.Background(), "   ", "")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderBadRequest))
}

func TestTextSearchZeroResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ZERO_RESULTS"})
	})

	results, err := client.TextSearch(context.Background(), "nowhere", "")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNearbySearch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "48.850000,2.350000", r.URL.Query().Get("location"))
		assert.Equal(t, "2000", r.URL.Query().Get("radius"))
		assert.Equal(t, "park", r.URL.Query().Get("type"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "OK",
			"results": []models.Place{{PlaceID: "n-1"}},
		})
	})

	results, err := client.NearbySearch(context.Background(), 48.85, 2.35, 2000, "park", "")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n-1", results[0].PlaceID)
}

func TestDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "p-1", r.URL.Query().Get("place_id"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"result": models.Place{PlaceID: "p-1", Name: "Detailed"},
		})
	})

	place, err := client.Details(context.Background(), "p-1")

	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, "Detailed", place.Name)
}

func TestDetailsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "NOT_FOUND"})
	})

	place, err := client.Details(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, place)
}

func TestProviderStatusErrors(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		wantCode apperrors.ErrorCode
	}{
		{"invalid request", "INVALID_REQUEST", apperrors.ErrCodeProviderBadRequest},
		{"quota exceeded", "OVER_QUERY_LIMIT", apperrors.ErrCodeProviderUnavailable},
		{"denied", "REQUEST_DENIED", apperrors.ErrCodeProviderUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status":        tc.status,
					"error_message": "provider says no",
				})
			})

			_, err := client.TextSearch(context.Background(), "anything", "")
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tc.wantCode))
		})
	}
}

func TestHTTPErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.TextSearch(context.Background(), "anything", "")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderUnavailable))
}

func TestTimeoutIsTyped(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "OK"})
	})
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.TextSearch(context.Background(), "slow", "")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderTimeout))
}
