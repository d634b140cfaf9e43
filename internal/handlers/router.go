// internal/handlers/router.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripscout/internal/common/auth"
	"tripscout/internal/common/logger"
)

// NewRouter wires the API routes. The sync endpoint mutates the local store
// and sits behind the bearer-token middleware; everything else is public.
func NewRouter(h *AttractionsHandler, validator *auth.Validator, log logger.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogging(log))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/attractions", h.List).Methods(http.MethodGet)
	api.HandleFunc("/attractions/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/attractions/popular", h.Popular).Methods(http.MethodGet)
	api.Handle("/attractions/sync", validator.Middleware(http.HandlerFunc(h.Sync))).Methods(http.MethodPost)
	api.HandleFunc("/attractions/{place_id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/attractions/{place_id}/similar", h.Similar).Methods(http.MethodGet)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
