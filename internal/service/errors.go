package service

import (
	"errors"
	"fmt"

	"fuelroute/internal/domain"
)

var (
	// ErrInvalidVehicleProfile is returned when tank range or fuel economy is not positive.
	ErrInvalidVehicleProfile = errors.New("invalid vehicle profile")

	// ErrEmptyRoute is returned when the route polyline has fewer than 2 points.
	ErrEmptyRoute = errors.New("route must contain at least 2 points")

	// ErrInvalidLocation is returned when a start or end location is empty.
	ErrInvalidLocation = errors.New("invalid location")
)

// StrandedError reports that planning failed because no reachable fuel
// station exists and the remaining range is below the critical floor.
// It carries the last known location and range so callers can surface
// where the trip becomes infeasible.
type StrandedError struct {
	Location       domain.Coordinate
	RemainingRange float64
}

func (e *StrandedError) Error() string {
	return fmt.Sprintf("no reachable fuel station: stranded at (%.4f, %.4f) with %.2f miles of range",
		e.Location.Lat, e.Location.Lon, e.RemainingRange)
}
