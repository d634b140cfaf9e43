// internal/search/params.go
package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "tripscout/internal/common/errors"
	"tripscout/internal/models"
)

// PriceLevelMax is the provider's highest price level. A ceiling at or above
// it filters nothing.
const PriceLevelMax = 4

// Params is the normalized query parameter set. The fingerprint is computed
// over this struct, never over the raw request values, so that key order and
// value representation cannot vary per caller.
type Params struct {
	Text       string         `json:"text"`
	Country    string         `json:"country"`
	City       string         `json:"city"`
	Categories []string       `json:"categories"`
	MinRating  float64        `json:"min_rating"`
	MaxPrice   *int           `json:"max_price,omitempty"`
	Lat        *float64       `json:"lat,omitempty"`
	Lng        *float64       `json:"lng,omitempty"`
	RadiusM    int            `json:"radius_m"`
	Profile    models.Profile `json:"profile"`
	Limit      int            `json:"limit"`
}

// ParseParams builds Params from raw query values. Malformed numeric fields
// are caller input errors and reported synchronously; everything else
// degrades to a zero value.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Text:    firstOf(values, "q", "query", "text"),
		Country: values.Get("country"),
		City:    values.Get("city"),
	}

	if raw := firstOf(values, "category", "categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.Categories = append(p.Categories, c)
			}
		}
	}

	if raw := firstOf(values, "min_rating", "minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("min_rating: %q is not numeric", raw))
		}
		p.MinRating = v
	}

	if raw := firstOf(values, "max_price_level", "maxPrice"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("max_price_level: %q is not numeric", raw))
		}
		p.MaxPrice = &v
	}

	latRaw, lngRaw := values.Get("lat"), values.Get("lng")
	if latRaw != "" || lngRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("lat: %q is not numeric", latRaw))
		}
		lng, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("lng: %q is not numeric", lngRaw))
		}
		p.Lat, p.Lng = &lat, &lng
	}

	if raw := values.Get("radius_m"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("radius_m: %q is not numeric", raw))
		}
		p.RadiusM = v
	}

	if raw := values.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, apperrors.NewInvalidSearchParamsError(fmt.Sprintf("limit: %q is not numeric", raw))
		}
		p.Limit = v
	}

	p.Profile = models.ParseProfile(values.Get("profile"))
	return p, nil
}

func firstOf(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := values.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// Normalize returns a canonical copy: trimmed text fields, lower-cased
// category tokens, clamped rating, defaulted profile and limit.
func (p Params) Normalize(defaultLimit int) Params {
	n := p
	n.Text = strings.TrimSpace(p.Text)
	n.Country = strings.TrimSpace(p.Country)
	n.City = strings.TrimSpace(p.City)

	if len(p.Categories) > 0 {
		n.Categories = make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
				n.Categories = append(n.Categories, c)
			}
		}
	}

	if n.MinRating < 0 {
		n.MinRating = 0
	}
	if n.MaxPrice != nil {
		ceiling := *n.MaxPrice
		if ceiling >= PriceLevelMax {
			// Ceiling at the scale maximum filters nothing.
			n.MaxPrice = nil
		} else {
			if ceiling < 0 {
				ceiling = 0
			}
			n.MaxPrice = &ceiling
		}
	}

	if n.RadiusM < 0 {
		n.RadiusM = 0
	}

	n.Profile = models.ParseProfile(string(p.Profile))
	if n.Limit <= 0 {
		n.Limit = defaultLimit
	}
	return n
}

// HasFilters reports whether any explicit attribute filter is active.
func (p Params) HasFilters() bool {
	return len(p.Categories) > 0 || p.MinRating > 0 || p.MaxPrice != nil
}

// HasLocation reports whether a usable coordinate pair is present.
func (p Params) HasLocation() bool {
	return p.Lat != nil && p.Lng != nil
}

// Fingerprint returns the deterministic cache key for the normalized params.
func (p Params) Fingerprint() string {
	// Struct field order is fixed, so the JSON form is canonical.
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
