package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fuelroute/internal/domain"
)

const nominatimUserAgent = "fuelroute/1.0"

// NominatimGeocoder resolves locations using the Nominatim search API.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder creates a geocoder against the given Nominatim
// base URL (e.g. https://nominatim.openstreetmap.org).
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatimResult is one entry of a Nominatim search response.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves the query to coordinates, returning
// ErrLocationNotFound when Nominatim has no usable match.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinate, error) {
	endpoint := g.baseURL + "/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: create request: %w", err)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "10")
	q.Set("countrycodes", "us")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: unexpected status %d", query, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: decode response: %w", query, err)
	}

	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr == nil && lonErr == nil {
			return domain.Coordinate{Lat: lat, Lon: lon}, nil
		}
	}

	return domain.Coordinate{}, ErrLocationNotFound
}
