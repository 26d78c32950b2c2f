package stats

import (
	"github.com/travigo/borderhop/pkg/planner"
	"golang.org/x/exp/slices"
)

type RecordsStats struct {
	ReachableStations int
	GeocodedStations  int
	UnplacedStations  int

	Providers []string

	ThresholdDegrees float64
	Workers          int

	CacheEnabled bool
}

// Compute summarises the loaded station snapshot and provider table. Both are
// immutable for the life of the process so this only runs once.
func Compute(services *planner.Services) *RecordsStats {
	recordsStats := &RecordsStats{
		Providers:    []string{},
		CacheEnabled: services.CacheEnabled,
	}

	if services.Corridor != nil {
		recordsStats.ThresholdDegrees = services.Corridor.ThresholdDegrees
		recordsStats.Workers = services.Corridor.Workers

		for _, station := range services.Corridor.Stations {
			switch {
			case station.IsGeocoded():
				recordsStats.GeocodedStations += 1
			case !station.HasCoordinate():
				recordsStats.UnplacedStations += 1
			default:
				recordsStats.ReachableStations += 1
			}
		}
	}

	if services.Providers != nil {
		for countryCode := range services.Providers.Table {
			recordsStats.Providers = append(recordsStats.Providers, countryCode)
		}
		slices.Sort(recordsStats.Providers)
	}

	return recordsStats
}
