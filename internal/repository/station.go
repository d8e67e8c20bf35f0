package repository

import (
	"context"

	"fuelroute/internal/domain"
)

// StationRepository defines the persistence operations for the fuel
// station catalog.
type StationRepository interface {
	// Create adds a new station.
	Create(ctx context.Context, station *domain.FuelStation) error

	// GetByID retrieves a station by ID.
	GetByID(ctx context.Context, id string) (*domain.FuelStation, error)

	// GetAll retrieves all stations.
	GetAll(ctx context.Context) ([]*domain.FuelStation, error)

	// QueryBoundingBox retrieves all stations whose coordinate falls
	// inside the given bounds.
	QueryBoundingBox(ctx context.Context, bounds domain.Bounds) ([]*domain.FuelStation, error)
}
