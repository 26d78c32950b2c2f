package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/borderhop/pkg/corridor"
	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/planner"
	"github.com/travigo/borderhop/pkg/providers"
)

func TestCompute(t *testing.T) {
	services := &planner.Services{
		Corridor: corridor.New(corridor.ReachableStationSet{
			{ID: 8003693, Name: "Lindau-Insel", Coordinate: &ctdf.Coordinate{Latitude: 47.544549, Longitude: 9.680914}},
			{ID: ctdf.GeocodedLocationID, Name: "Oberstdorf", Coordinate: &ctdf.Coordinate{Latitude: 47.4096, Longitude: 10.2795}},
			{ID: 1, Name: "Ghost Halt"},
		}, nil),
		Providers: providers.NewDirectory(providers.Table{
			"DE": {CountryCode: "DE", Name: "Deutsche Bahn"},
			"AT": {CountryCode: "AT", Name: "ÖBB"},
		}, nil, nil),
		CacheEnabled: true,
	}

	recordsStats := Compute(services)

	assert.Equal(t, 1, recordsStats.ReachableStations)
	assert.Equal(t, 1, recordsStats.GeocodedStations)
	assert.Equal(t, 1, recordsStats.UnplacedStations)
	assert.Equal(t, []string{"AT", "DE"}, recordsStats.Providers)
	assert.Equal(t, corridor.DefaultThresholdDegrees, recordsStats.ThresholdDegrees)
	assert.True(t, recordsStats.CacheEnabled)
}

func TestComputeEmpty(t *testing.T) {
	recordsStats := Compute(&planner.Services{})

	assert.Zero(t, recordsStats.ReachableStations)
	assert.Empty(t, recordsStats.Providers)
}
