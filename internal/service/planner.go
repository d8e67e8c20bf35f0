package service

import (
	"context"
	"math"

	"fuelroute/internal/domain"
)

// Distancer provides great-circle distance in miles between two
// coordinates. The production implementation is the Redis-backed
// distance cache; tests inject a plain function.
type Distancer interface {
	Distance(ctx context.Context, a, b domain.Coordinate) float64
}

// DistanceFunc adapts an ordinary function to the Distancer interface.
type DistanceFunc func(ctx context.Context, a, b domain.Coordinate) float64

// Distance calls f(ctx, a, b).
func (f DistanceFunc) Distance(ctx context.Context, a, b domain.Coordinate) float64 {
	return f(ctx, a, b)
}

// PlannerPolicy contains the tunable constants of the stop-selection
// heuristic.
type PlannerPolicy struct {
	RefuelThresholdFrac float64 // refuel when remaining range drops below this fraction of the tank
	SafetyMarginMiles   float64 // required headroom over the distance to the next waypoint
	SearchRadiusFactor  float64 // fraction of remaining range used as the station search radius
	DesperateRangeMiles float64 // below this range the search radius loses its margin entirely
	CriticalRangeMiles  float64 // below this range with no candidate, the trip is infeasible
	DeviationWeight     float64 // price-units per extra detour mile in candidate scoring
	LookaheadMiles      float64 // assumed next-leg distance at the final waypoint
	SampleSpacingMiles  float64 // target route distance between sampled waypoints
	BBoxBufferDegrees   float64 // catalog prefilter buffer around the route bounding box
	FallbackPrice       float64 // per-gallon price when there are no stops and no stations
}

// DefaultPlannerPolicy returns the default planning policy.
func DefaultPlannerPolicy() PlannerPolicy {
	return PlannerPolicy{
		RefuelThresholdFrac: 0.40,
		SafetyMarginMiles:   20,
		SearchRadiusFactor:  0.95,
		DesperateRangeMiles: 50,
		CriticalRangeMiles:  20,
		DeviationWeight:     0.05,
		LookaheadMiles:      50,
		SampleSpacingMiles:  50,
		BBoxBufferDegrees:   1.0,
		FallbackPrice:       3.50,
	}
}

// resumeScanSlackMiles bounds the forward scan when re-synchronizing
// the walk after a detour: once a waypoint is this much farther from
// the station than the running minimum, the scan has moved past the
// station and stops.
const resumeScanSlackMiles = 50

// Planner selects fuel stops along a precomputed route. It walks the
// sampled waypoints tracking remaining range, and refuels at the
// cheapest reachable station whenever the range drops below the policy
// thresholds. The result is a greedy heuristic, not a cost-optimal
// plan.
type Planner struct {
	distance Distancer
	policy   PlannerPolicy
}

// NewPlanner creates a new Planner.
func NewPlanner(distance Distancer, policy PlannerPolicy) *Planner {
	return &Planner{distance: distance, policy: policy}
}

// PlanRequest contains the inputs for planning fuel stops.
type PlanRequest struct {
	Start         domain.Coordinate
	End           domain.Coordinate
	Route         domain.RoutePolyline
	TotalDistance float64 // route miles, as reported by the routing provider
	Vehicle       domain.VehicleProfile
	Stations      []*domain.FuelStation // prefiltered catalog snapshot
}

// candidate is a station reachable from the current waypoint, scored
// for selection.
type candidate struct {
	station   *domain.FuelStation
	distance  float64 // miles from the current waypoint
	deviation float64 // extra miles incurred by the detour
	score     float64
}

// Plan walks the route and produces the ordered fuel stops plus the
// total cost estimate. It guarantees the vehicle never runs out of
// range between stops, failing with a StrandedError when that cannot
// be satisfied.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*domain.TripPlan, error) {
	if req.Vehicle.TankRangeMiles <= 0 || req.Vehicle.FuelEconomyMPG <= 0 {
		return nil, ErrInvalidVehicleProfile
	}
	if len(req.Route) < 2 {
		return nil, ErrEmptyRoute
	}

	waypoints := SampleRoute(req.Route, req.TotalDistance, p.policy.SampleSpacingMiles)
	tank := req.Vehicle.TankRangeMiles

	var stops []domain.FuelStop
	lastStop := req.Start

	// remaining holds the drivable miles on arrival at the current
	// waypoint. After a detour the value is set directly for the
	// resume waypoint, so the usual previous-leg subtraction is
	// skipped for that one iteration.
	remaining := tank
	arrivedViaDetour := false

	i := 0
	for i < len(waypoints) {
		cur := waypoints[i].Coord

		if i > 0 && !arrivedViaDetour {
			remaining -= p.distance.Distance(ctx, waypoints[i-1].Coord, cur)
		}
		arrivedViaDetour = false

		distFromStart := p.distance.Distance(ctx, req.Start, cur)

		distToNext := p.policy.LookaheadMiles
		if i < len(waypoints)-1 {
			distToNext = p.distance.Distance(ctx, cur, waypoints[i+1].Coord)
		}

		// Cruise while there is comfortable range for the next leg.
		if remaining >= p.policy.RefuelThresholdFrac*tank && remaining >= distToNext+p.policy.SafetyMarginMiles {
			i++
			continue
		}

		// Seeking: the trip may still finish on the current tank.
		distToEnd := p.distance.Distance(ctx, cur, req.End)
		if remaining >= distToEnd {
			i++
			continue
		}

		best := p.bestCandidate(ctx, cur, req.End, distToEnd, remaining, req.Stations)
		if best == nil {
			if remaining < p.policy.CriticalRangeMiles {
				return nil, &StrandedError{Location: cur, RemainingRange: remaining}
			}
			// No station in reach but range is above the critical
			// floor: press on and retry at the next waypoint. This can
			// defer an infeasibility that is already certain.
			i++
			continue
		}

		rangeAtStation := remaining - best.distance
		gallons := (tank - rangeAtStation) / req.Vehicle.FuelEconomyMPG
		stops = append(stops, domain.FuelStop{
			StationID:         best.station.ID,
			Name:              best.station.Name,
			Location:          best.station.Coordinate(),
			Price:             best.station.RetailPrice,
			DistanceFromStart: distFromStart + best.distance,
			Gallons:           gallons,
			Cost:              best.station.RetailPrice * gallons,
		})
		lastStop = best.station.Coordinate()

		k := p.resumeIndex(ctx, waypoints, i, lastStop)
		if k < len(waypoints)-1 {
			// Depart the station with a full tank; on arrival at the
			// resume waypoint the range is the tank minus the distance
			// driven from the station.
			i = k + 1
			remaining = tank - p.distance.Distance(ctx, lastStop, waypoints[i].Coord)
			arrivedViaDetour = true
			continue
		}

		// The station maps onto the final waypoint: finish the walk on
		// a full tank.
		remaining = tank
		i++
	}

	finalLeg := p.distance.Distance(ctx, lastStop, req.End)
	gallonsFinal := finalLeg / req.Vehicle.FuelEconomyMPG
	totalCost := finalLegPrice(stops, req.Stations, p.policy.FallbackPrice) * gallonsFinal
	for _, stop := range stops {
		totalCost += stop.Cost
	}

	return &domain.TripPlan{
		FuelStops:     stops,
		TotalCost:     totalCost,
		TotalDistance: req.TotalDistance,
	}, nil
}

// bestCandidate returns the lowest-scoring station within the search
// radius, or nil when none is reachable. Price dominates the score;
// detour deviation acts as a soft tie-breaker. Ties keep the earlier
// candidate in catalog order.
func (p *Planner) bestCandidate(ctx context.Context, cur, end domain.Coordinate, distToEnd, remaining float64, stations []*domain.FuelStation) *candidate {
	radius := remaining * p.policy.SearchRadiusFactor
	if remaining < p.policy.DesperateRangeMiles {
		// Desperate mode: spend the whole remaining range on the
		// detour, accepting that road distance may exceed the geodesic
		// estimate.
		radius = remaining
	}

	var best *candidate
	for _, station := range stations {
		dist := p.distance.Distance(ctx, cur, station.Coordinate())
		if dist > radius {
			continue
		}

		deviation := dist + p.distance.Distance(ctx, station.Coordinate(), end) - distToEnd
		score := station.RetailPrice + deviation*p.policy.DeviationWeight
		if best == nil || score < best.score {
			best = &candidate{station: station, distance: dist, deviation: deviation, score: score}
		}
	}

	return best
}

// resumeIndex finds the sampled waypoint at or after i closest to the
// station, so the walk can re-synchronize after the detour. The scan
// exits early once the waypoints are clearly moving away from the
// station.
func (p *Planner) resumeIndex(ctx context.Context, waypoints []domain.SampledWaypoint, i int, station domain.Coordinate) int {
	bestK := i
	minDist := math.Inf(1)

	for k := i; k < len(waypoints); k++ {
		d := p.distance.Distance(ctx, waypoints[k].Coord, station)
		if d < minDist {
			minDist = d
			bestK = k
		} else if d > minDist+resumeScanSlackMiles {
			break
		}
	}

	return bestK
}
