// Package resolver turns user entered place names into locations, preferring
// transit network stations and falling back to the geocoder
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/cachedresults"
	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/geocoder"
)

var ErrLocationNotFound = errors.New("location not found")

type StationLookup interface {
	GetLocation(ctx context.Context, name string) (*ctdf.Location, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocoder.Place, error)
}

type Resolver struct {
	Stations StationLookup
	Geocoder Geocoder
	Cache    *cachedresults.Cache
}

func New(stations StationLookup, geocoder Geocoder, cache *cachedresults.Cache) *Resolver {
	return &Resolver{
		Stations: stations,
		Geocoder: geocoder,
		Cache:    cache,
	}
}

// Resolve returns the transit station matching name, or a geocoded location
// carrying ctdf.GeocodedLocationID when the transit service does not know it
func (r *Resolver) Resolve(ctx context.Context, name string) (*ctdf.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrLocationNotFound)
	}

	cacheKey := fmt.Sprintf("location:%s", name)

	var cached ctdf.Location
	if found, absent := r.Cache.Get(ctx, cacheKey, &cached); found {
		if absent {
			return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
		}
		return &cached, nil
	}

	station, err := r.Stations.GetLocation(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("Transit location lookup failed, trying geocoder")
	}

	if station != nil && station.HasCoordinate() {
		r.Cache.Set(ctx, cacheKey, station)
		return station, nil
	}

	place, geocodeErr := r.Geocoder.Geocode(ctx, name)
	if geocodeErr != nil {
		// service failures are not cached so a later attempt can still succeed
		return nil, fmt.Errorf("%w: %q unknown to transit service: %w", ErrLocationNotFound, name, geocodeErr)
	}

	if place == nil {
		if err != nil {
			return nil, fmt.Errorf("%w: %q transit lookup failed and geocoder found nothing: %w", ErrLocationNotFound, name, err)
		}

		r.Cache.SetAbsent(ctx, cacheKey)
		return nil, fmt.Errorf("%w: %q unknown to transit service and geocoder", ErrLocationNotFound, name)
	}

	coordinate := place.Coordinate
	location := &ctdf.Location{
		ID:         ctdf.GeocodedLocationID,
		Name:       name,
		Coordinate: &coordinate,
	}

	log.Debug().
		Str("name", name).
		Str("geocoded", place.Name).
		Str("coordinate", coordinate.String()).
		Msg("Resolved location with geocoder")

	r.Cache.Set(ctx, cacheKey, location)

	return location, nil
}
