// internal/handlers/attractions.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/common/logger"
	"tripscout/internal/models"
	"tripscout/internal/search"
)

// SearchEngine is the orchestrator surface the HTTP layer consumes.
type SearchEngine interface {
	Search(ctx context.Context, params search.Params) ([]models.Attraction, error)
	PopularByCountry(ctx context.Context, country string, limit int, profile models.Profile, city string) ([]models.Attraction, error)
	GetByPlaceID(ctx context.Context, placeID string) (*models.Attraction, error)
	SimilarSuggestions(ctx context.Context, placeID string, limit int) ([]models.Attraction, error)
	SyncFromProvider(ctx context.Context, country string, limit int) (synced, totalFound int, err error)
}

// AttractionsHandler serves the attraction discovery API.
type AttractionsHandler struct {
	engine SearchEngine
	logger logger.Logger
}

func NewAttractionsHandler(engine SearchEngine, log logger.Logger) *AttractionsHandler {
	return &AttractionsHandler{
		engine: engine,
		logger: log.WithFields(map[string]interface{}{
			"component": "attractions_handler",
		}),
	}
}

type resultsResponse struct {
	Results []models.Attraction `json:"results"`
	Count   int                 `json:"count"`
}

type syncRequest struct {
	Country string `json:"country"`
	Limit   int    `json:"limit"`
}

type syncResponse struct {
	Synced     int `json:"synced"`
	TotalFound int `json:"total_found"`
}

// List is the catch-all attraction listing: with only a country it behaves
// like the popular endpoint, with anything more it is a full search. Both
// paths share the cache, so the split is cosmetic.
func (h *AttractionsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.Search(w, r)
}

// Search runs a full query-parameter search.
func (h *AttractionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	results, err := h.engine.Search(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resultsResponse{Results: results, Count: len(results)})
}

// Popular returns a country's popular attractions.
func (h *AttractionsHandler) Popular(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	country := query.Get("country")
	if country == "" {
		h.writeError(w, apperrors.NewInvalidSearchParamsError("country is required"))
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, apperrors.NewInvalidSearchParamsError("limit: "+strconv.Quote(raw)+" is not numeric"))
			return
		}
		limit = v
	}

	profile := models.ParseProfile(query.Get("profile"))
	results, err := h.engine.PopularByCountry(r.Context(), country, limit, profile, query.Get("city"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resultsResponse{Results: results, Count: len(results)})
}

// Get returns one attraction by its provider place id.
func (h *AttractionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["place_id"]

	attraction, err := h.engine.GetByPlaceID(r.Context(), placeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, attraction)
}

// Similar returns places resembling the given one.
func (h *AttractionsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["place_id"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, apperrors.NewInvalidSearchParamsError("limit: "+strconv.Quote(raw)+" is not numeric"))
			return
		}
		limit = v
	}

	results, err := h.engine.SimilarSuggestions(r.Context(), placeID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resultsResponse{Results: results, Count: len(results)})
}

// Sync pulls a country's places from the provider into the local store.
func (h *AttractionsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.NewInvalidSearchParamsError("request body must be JSON with a country field"))
		return
	}

	synced, totalFound, err := h.engine.SyncFromProvider(r.Context(), req.Country, req.Limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, syncResponse{Synced: synced, TotalFound: totalFound})
}

func (h *AttractionsHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *AttractionsHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	se, ok := err.(*apperrors.StandardError)
	if !ok {
		se = &apperrors.StandardError{
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		}
	} else {
		switch se.Code {
		case apperrors.ErrCodeInvalidSearchParams:
			status = http.StatusBadRequest
		case apperrors.ErrCodePlaceNotFound, apperrors.ErrCodeUnresolvableReference:
			status = http.StatusNotFound
		case apperrors.ErrCodeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrCodeProviderUnavailable, apperrors.ErrCodeProviderTimeout:
			status = http.StatusBadGateway
		}
	}

	h.logger.Warn("request failed", map[string]interface{}{
		"code":   string(se.Code),
		"status": status,
	})
	h.writeJSON(w, status, map[string]interface{}{"error": se})
}
