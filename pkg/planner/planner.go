// Package planner runs one routing session: resolve both endpoints, look for a
// direct connection and fall back to the corridor search when there is none
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/ctdf"
)

var (
	ErrOriginUnresolved      = errors.New("origin could not be resolved")
	ErrDestinationUnresolved = errors.New("destination could not be resolved")
)

type LocationResolver interface {
	Resolve(ctx context.Context, name string) (*ctdf.Location, error)
}

type ConnectionFinder interface {
	GetNextConnection(ctx context.Context, origin string, destination string) (*ctdf.Connection, error)
}

type CorridorSearcher interface {
	Search(ctx context.Context, origin *ctdf.Location, destination *ctdf.Location) ([]ctdf.CorridorHit, error)
}

type ProviderDirectory interface {
	ProviderFor(ctx context.Context, location *ctdf.Location) (*ctdf.ProviderEntry, error)
}

type Planner struct {
	Resolver  LocationResolver
	Transit   ConnectionFinder
	Corridor  CorridorSearcher
	Providers ProviderDirectory
}

func New(resolver LocationResolver, transit ConnectionFinder, corridor CorridorSearcher, providers ProviderDirectory) *Planner {
	return &Planner{
		Resolver:  resolver,
		Transit:   transit,
		Corridor:  corridor,
		Providers: providers,
	}
}

// Plan finds route options between the two named places. An error is only
// returned when the session cannot continue; every other outcome is described
// by the plan's terminal state.
func (p *Planner) Plan(ctx context.Context, originName string, destinationName string) (*ctdf.RoutePlan, error) {
	plan := &ctdf.RoutePlan{
		SessionID: uuid.NewString(),
		State:     ctdf.PlanStateResolvingOrigin,
	}

	logger := log.With().Str("session", plan.SessionID).Logger()

	origin, err := p.Resolver.Resolve(ctx, originName)
	if err != nil {
		return plan, fmt.Errorf("%w: %w", ErrOriginUnresolved, err)
	}
	plan.Origin = *origin

	plan.State = ctdf.PlanStateResolvingDestination
	destination, err := p.Resolver.Resolve(ctx, destinationName)
	if err != nil {
		return plan, fmt.Errorf("%w: %w", ErrDestinationUnresolved, err)
	}
	plan.Destination = *destination

	logger.Info().
		Str("origin", origin.Name).
		Str("destination", destination.Name).
		Bool("origin_geocoded", origin.IsGeocoded()).
		Bool("destination_geocoded", destination.IsGeocoded()).
		Msg("Resolved journey endpoints")

	if origin.HasCoordinate() && destination.HasCoordinate() &&
		ctdf.SameCoordinate(*origin.Coordinate, *destination.Coordinate) {
		plan.State = ctdf.PlanStateSameLocation
		return plan, nil
	}

	plan.State = ctdf.PlanStateSearchingDirect
	direct, err := p.Transit.GetNextConnection(ctx, origin.Name, destination.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("Direct connection lookup failed")
	}

	if direct != nil {
		plan.Options = []ctdf.RouteOption{
			{
				Type:       ctdf.RouteOptionTypeDirect,
				Connection: *direct,
			},
		}
		plan.State = ctdf.PlanStateDone

		return plan, nil
	}

	plan.State = ctdf.PlanStateSearchingCorridor
	hits, err := p.Corridor.Search(ctx, origin, destination)
	if err != nil {
		return plan, err
	}

	if len(hits) == 0 {
		plan.State = ctdf.PlanStateNoCandidates
		return plan, nil
	}

	plan.State = ctdf.PlanStatePresentingResults
	plan.Options = p.intermediateOptions(ctx, logger, origin, destination, hits)
	plan.State = ctdf.PlanStateDone

	return plan, nil
}

// intermediateOptions measures coverage to the corridor station that was
// probed, not to whatever station the transit service answered with
func (p *Planner) intermediateOptions(ctx context.Context, logger zerolog.Logger, origin *ctdf.Location, destination *ctdf.Location, hits []ctdf.CorridorHit) []ctdf.RouteOption {
	total := ctdf.DistanceKm(origin.Coordinate, destination.Coordinate)

	options := make([]ctdf.RouteOption, 0, len(hits))

	for _, hit := range hits {
		station := hit.Station
		covered := ctdf.DistanceKm(origin.Coordinate, station.Coordinate)

		option := ctdf.RouteOption{
			Type:       ctdf.RouteOptionTypeIntermediate,
			Connection: hit.Connection,
			Via:        &station,
			CoveredKm:  covered,
			TotalKm:    total,
			Percentage: ctdf.CoveragePercentage(covered, total),
		}

		provider, err := p.Providers.ProviderFor(ctx, &station)
		if err != nil {
			logger.Debug().Err(err).Str("station", station.Name).Msg("No local provider")
			option.ProviderError = err.Error()
		} else {
			option.Provider = provider
		}

		options = append(options, option)
	}

	return options
}
