// Package corridor finds intermediate stations lying in the direction of
// travel and checks which of them can actually be reached
package corridor

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/borderhop/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const (
	DefaultThresholdDegrees = 20.0
	DefaultWorkers          = 4
)

type ConnectionFinder interface {
	GetNextConnection(ctx context.Context, origin string, destination string) (*ctdf.Connection, error)
}

type Search struct {
	Stations         ReachableStationSet
	Transit          ConnectionFinder
	ThresholdDegrees float64
	Workers          int
}

func New(stations ReachableStationSet, transit ConnectionFinder) *Search {
	return &Search{
		Stations:         stations,
		Transit:          transit,
		ThresholdDegrees: DefaultThresholdDegrees,
		Workers:          DefaultWorkers,
	}
}

// Filter returns the stations within ThresholdDegrees of the direct bearing
// from origin to destination, in station set order
func (s *Search) Filter(origin *ctdf.Location, destination *ctdf.Location) []ctdf.Location {
	if !origin.HasCoordinate() || !destination.HasCoordinate() {
		log.Warn().
			Str("origin", origin.Name).
			Str("destination", destination.Name).
			Msg("Corridor search needs both endpoint coordinates")
		return nil
	}

	// No direction of travel between coinciding endpoints
	if ctdf.SameCoordinate(*origin.Coordinate, *destination.Coordinate) {
		log.Debug().
			Str("origin", origin.Name).
			Str("destination", destination.Name).
			Msg("Corridor endpoints coincide")
		return nil
	}

	var candidates []ctdf.Location

	for _, station := range s.Stations {
		if !station.HasCoordinate() || station.IsGeocoded() {
			continue
		}

		deviation := ctdf.AngularDeviation(*origin.Coordinate, *destination.Coordinate, *station.Coordinate)
		if deviation <= s.ThresholdDegrees {
			candidates = append(candidates, station)
		}
	}

	return candidates
}

type probeResult struct {
	index      int
	candidate  ctdf.Location
	connection *ctdf.Connection
}

// Search probes every corridor candidate for a connection from origin.
// Failed probes are skipped; results keep candidate order.
func (s *Search) Search(ctx context.Context, origin *ctdf.Location, destination *ctdf.Location) ([]ctdf.CorridorHit, error) {
	candidates := s.Filter(origin, destination)

	log.Debug().
		Str("origin", origin.Name).
		Str("destination", destination.Name).
		Int("stations", len(s.Stations)).
		Int("candidates", len(candidates)).
		Msg("Corridor candidates")

	if len(candidates) == 0 {
		return []ctdf.CorridorHit{}, nil
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	p := pool.NewWithResults[probeResult]().WithContext(ctx).WithMaxGoroutines(workers)

	for index, candidate := range candidates {
		index, candidate := index, candidate
		p.Go(func(ctx context.Context) (probeResult, error) {
			connection, err := s.Transit.GetNextConnection(ctx, origin.Name, candidate.Name)
			if err != nil {
				log.Warn().Err(err).Str("candidate", candidate.Name).Msg("Skipping corridor candidate")
				return probeResult{index: index}, nil
			}

			return probeResult{index: index, candidate: candidate, connection: connection}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b probeResult) int {
		return a.index - b.index
	})

	hits := []ctdf.CorridorHit{}
	for _, result := range results {
		if result.connection != nil {
			hits = append(hits, ctdf.CorridorHit{
				Station:    result.candidate,
				Connection: *result.connection,
			})
		}
	}

	if ctx.Err() != nil {
		return hits, ctx.Err()
	}

	return hits, nil
}
