package provider

import (
	"context"
	"errors"

	"fuelroute/internal/domain"
)

var (
	// ErrLocationNotFound is returned when geocoding yields no result.
	ErrLocationNotFound = errors.New("location not found")

	// ErrRouteUnavailable is returned when the routing provider cannot
	// produce a route between the given coordinates.
	ErrRouteUnavailable = errors.New("route unavailable")
)

// Geocoder resolves a free-text location into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinate, error)
}

// RouteStep is one turn-by-turn instruction of a route leg.
type RouteStep struct {
	Name          string
	Maneuver      string
	DistanceMiles float64
}

// Route is a driving route as returned by the routing provider.
type Route struct {
	Polyline      domain.RoutePolyline
	DistanceMiles float64
	Steps         []RouteStep
}

// RouteProvider fetches a driving route between two coordinates.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination domain.Coordinate) (*Route, error)
}
