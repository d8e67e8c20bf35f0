package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fuelroute/internal/domain"
)

const metersPerMile = 1609.34

// OSRMRouter fetches driving routes from an OSRM instance.
type OSRMRouter struct {
	baseURL string
	client  *http.Client
}

// NewOSRMRouter creates a router against the given OSRM base URL
// (e.g. http://router.project-osrm.org).
func NewOSRMRouter(baseURL string) *OSRMRouter {
	return &OSRMRouter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// osrmResponse mirrors the subset of the OSRM route response we use.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Distance float64 `json:"distance"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route fetches the driving route between origin and destination,
// returning ErrRouteUnavailable when OSRM cannot produce one.
func (r *OSRMRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (*Route, error) {
	// OSRM takes lon,lat pairs in the path.
	endpoint := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson&steps=true",
		r.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("route: create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route: unexpected status %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("route: decode response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, ErrRouteUnavailable
	}

	best := decoded.Routes[0]
	polyline := make(domain.RoutePolyline, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("route: malformed coordinate pair in geometry")
		}
		polyline = append(polyline, domain.Coordinate{Lon: pair[0], Lat: pair[1]})
	}

	var steps []RouteStep
	if len(best.Legs) > 0 {
		for _, s := range best.Legs[0].Steps {
			maneuver := s.Maneuver.Type
			if s.Maneuver.Modifier != "" {
				maneuver += " " + s.Maneuver.Modifier
			}
			steps = append(steps, RouteStep{
				Name:          s.Name,
				Maneuver:      maneuver,
				DistanceMiles: s.Distance / metersPerMile,
			})
		}
	}

	return &Route{
		Polyline:      polyline,
		DistanceMiles: best.Distance / metersPerMile,
		Steps:         steps,
	}, nil
}
