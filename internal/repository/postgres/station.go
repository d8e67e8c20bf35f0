package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fuelroute/internal/domain"
	"fuelroute/internal/repository"
)

// StationRepository is a PostgreSQL implementation of
// repository.StationRepository backed by the fuel_stations table.
type StationRepository struct {
	q Querier
}

// NewStationRepository creates a new PostgreSQL station repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{q: db}
}

// NewStationRepositoryWithTx creates a station repository using a transaction.
func NewStationRepositoryWithTx(tx *sql.Tx) *StationRepository {
	return &StationRepository{q: tx}
}

// Create adds a new station.
func (r *StationRepository) Create(ctx context.Context, station *domain.FuelStation) error {
	query := `INSERT INTO fuel_stations (id, name, lat, lon, retail_price) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query, station.ID, station.Name, station.Lat, station.Lon, station.RetailPrice)
	return err
}

// GetByID retrieves a station by ID.
func (r *StationRepository) GetByID(ctx context.Context, id string) (*domain.FuelStation, error) {
	query := `SELECT id, COALESCE(name, ''), lat, lon, retail_price FROM fuel_stations WHERE id = $1`

	var station domain.FuelStation
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&station.ID,
		&station.Name,
		&station.Lat,
		&station.Lon,
		&station.RetailPrice,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &station, nil
}

// GetAll retrieves all stations.
func (r *StationRepository) GetAll(ctx context.Context) ([]*domain.FuelStation, error) {
	query := `SELECT id, COALESCE(name, ''), lat, lon, retail_price FROM fuel_stations ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStations(rows)
}

// QueryBoundingBox retrieves all stations inside the given bounds.
// This is a coarse spatial prefilter; the planner applies exact
// distance checks afterwards.
func (r *StationRepository) QueryBoundingBox(ctx context.Context, bounds domain.Bounds) ([]*domain.FuelStation, error) {
	query := `SELECT id, COALESCE(name, ''), lat, lon, retail_price FROM fuel_stations
		WHERE lat BETWEEN $1 AND $2 AND lon BETWEEN $3 AND $4`

	rows, err := r.q.QueryContext(ctx, query, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStations(rows)
}

func scanStations(rows *sql.Rows) ([]*domain.FuelStation, error) {
	var stations []*domain.FuelStation
	for rows.Next() {
		var station domain.FuelStation
		if err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Lat,
			&station.Lon,
			&station.RetailPrice,
		); err != nil {
			return nil, err
		}
		stations = append(stations, &station)
	}
	return stations, rows.Err()
}
