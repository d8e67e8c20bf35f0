package service

import "fuelroute/internal/domain"

// SampleRoute reduces a dense route polyline to waypoints spaced
// roughly every spacingMiles of route distance. Dense provider
// polylines can carry thousands of points; walking every one of them
// would make each planning step proportional to polyline density
// rather than route length.
//
// The sampled sequence always starts at the route's first point, ends
// at its last point, and has at least one element.
func SampleRoute(route domain.RoutePolyline, totalDistance, spacingMiles float64) []domain.SampledWaypoint {
	stride := 1
	if segments := int(totalDistance / spacingMiles); segments > 0 {
		if s := len(route) / segments; s > 1 {
			stride = s
		}
	}

	var sampled []domain.SampledWaypoint
	for i := 0; i < len(route); i += stride {
		sampled = append(sampled, domain.SampledWaypoint{Index: len(sampled), Coord: route[i]})
	}

	last := route[len(route)-1]
	if sampled[len(sampled)-1].Coord != last {
		sampled = append(sampled, domain.SampledWaypoint{Index: len(sampled), Coord: last})
	}

	return sampled
}
