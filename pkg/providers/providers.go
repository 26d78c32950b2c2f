// Package providers hands a traveller over to the local transport provider of
// the country an intermediate station lies in
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/cachedresults"
	"github.com/travigo/borderhop/pkg/ctdf"
)

var ErrProviderLookupFailed = errors.New("local provider lookup failed")

type ReverseGeocoder interface {
	ReverseCountry(ctx context.Context, coordinate ctdf.Coordinate) (string, error)
}

type Directory struct {
	Table   Table
	Reverse ReverseGeocoder
	Cache   *cachedresults.Cache
}

func NewDirectory(table Table, reverse ReverseGeocoder, cache *cachedresults.Cache) *Directory {
	return &Directory{
		Table:   table,
		Reverse: reverse,
		Cache:   cache,
	}
}

// ReverseCountry resolves the country code for a coordinate, memoised in the
// result cache
func (d *Directory) ReverseCountry(ctx context.Context, coordinate ctdf.Coordinate) (string, error) {
	cacheKey := fmt.Sprintf("country:%s", coordinate)

	var countryCode string
	if found, absent := d.Cache.Get(ctx, cacheKey, &countryCode); found && !absent {
		return countryCode, nil
	}

	countryCode, err := d.Reverse.ReverseCountry(ctx, coordinate)
	if err != nil {
		return "", err
	}

	d.Cache.Set(ctx, cacheKey, countryCode)

	return countryCode, nil
}

// ProviderFor returns the provider serving the country of the location. Any
// failure along the way is reported as ErrProviderLookupFailed.
func (d *Directory) ProviderFor(ctx context.Context, location *ctdf.Location) (*ctdf.ProviderEntry, error) {
	if !location.HasCoordinate() {
		return nil, fmt.Errorf("%w: %s has no coordinate", ErrProviderLookupFailed, location.Name)
	}

	countryCode, err := d.ReverseCountry(ctx, *location.Coordinate)
	if err != nil {
		log.Warn().Err(err).Str("station", location.Name).Msg("Reverse geocoding failed")
		return nil, fmt.Errorf("%w: %w", ErrProviderLookupFailed, err)
	}

	provider := d.Table.Lookup(countryCode)
	if provider == nil {
		return nil, fmt.Errorf("%w: no provider for country %q", ErrProviderLookupFailed, countryCode)
	}

	return provider, nil
}
