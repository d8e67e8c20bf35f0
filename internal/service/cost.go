package service

import "fuelroute/internal/domain"

// StopSummary aggregates read-only statistics over a plan's fuel stops.
type StopSummary struct {
	StopCount    int
	TotalGallons float64
	AveragePrice float64
}

// Summarize computes summary statistics over the final stop list.
func Summarize(stops []domain.FuelStop) StopSummary {
	summary := StopSummary{StopCount: len(stops)}
	if len(stops) == 0 {
		return summary
	}

	var priceSum float64
	for _, stop := range stops {
		summary.TotalGallons += stop.Gallons
		priceSum += stop.Price
	}
	summary.AveragePrice = priceSum / float64(len(stops))
	return summary
}

// finalLegPrice picks the per-gallon price used for the trailing leg:
// the last stop's price if any stops occurred, otherwise the mean price
// across the prefiltered catalog, otherwise the fixed fallback.
func finalLegPrice(stops []domain.FuelStop, stations []*domain.FuelStation, fallback float64) float64 {
	if len(stops) > 0 {
		return stops[len(stops)-1].Price
	}

	if len(stations) > 0 {
		var sum float64
		for _, s := range stations {
			sum += s.RetailPrice
		}
		return sum / float64(len(stations))
	}

	return fallback
}
