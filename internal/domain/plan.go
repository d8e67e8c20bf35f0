package domain

// SampledWaypoint is a reduced-resolution point along the route
// polyline used to pace the refuel decision loop.
type SampledWaypoint struct {
	Index int // position in the sampled sequence
	Coord Coordinate
}

// FuelStop records a single refueling decision. Stops are appended in
// driving order and never modified afterwards.
type FuelStop struct {
	StationID         string
	Name              string
	Location          Coordinate
	Price             float64 // currency per gallon at purchase
	DistanceFromStart float64 // approximate route miles to the stop
	Gallons           float64
	Cost              float64
}

// TripPlan is the final output of planning: the ordered fuel stops plus
// the trip totals. It is constructed once and never mutated.
type TripPlan struct {
	FuelStops     []FuelStop
	TotalCost     float64
	TotalDistance float64
}
