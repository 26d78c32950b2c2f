package planner

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/cachedresults"
	"github.com/travigo/borderhop/pkg/config"
	"github.com/travigo/borderhop/pkg/corridor"
	"github.com/travigo/borderhop/pkg/geocoder"
	"github.com/travigo/borderhop/pkg/httpclient"
	"github.com/travigo/borderhop/pkg/providers"
	"github.com/travigo/borderhop/pkg/redis_client"
	"github.com/travigo/borderhop/pkg/resolver"
	"github.com/travigo/borderhop/pkg/transitapi"
)

// Services holds the session wide, read-only components built from config
type Services struct {
	Planner   *Planner
	Resolver  *resolver.Resolver
	Corridor  *corridor.Search
	Providers *providers.Directory

	CacheEnabled bool
}

// Setup builds every component. An unusable station cache aborts the session;
// a missing provider table or Redis only degrades it.
func Setup(cfg config.AppConfig) (*Services, error) {
	stations, err := corridor.LoadStations(cfg.Corridor.StationsFile)
	if err != nil {
		return nil, err
	}

	table, err := providers.LoadTable(cfg.Providers.File)
	if err != nil {
		log.Warn().Err(err).Msg("Continuing without local provider table")
		table = providers.Table{}
	}

	if err := redis_client.Connect(cfg.Redis); err != nil {
		log.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("Continuing without result cache")
	}
	resultCache := cachedresults.New(redis_client.Client, cfg.Redis.Expiration)

	httpOptions := httpclient.Options{
		Timeout:       cfg.HTTP.Timeout,
		Retries:       cfg.HTTP.Retries,
		BackoffFactor: cfg.HTTP.BackoffFactor,
		UserAgent:     cfg.HTTP.UserAgent,
	}

	transit := transitapi.New(cfg.Transit.BaseURL, httpOptions)
	geo := geocoder.New(cfg.Geocoder.BaseURL, httpOptions)

	locationResolver := resolver.New(transit, geo, resultCache)

	corridorSearch := corridor.New(stations, transit)
	corridorSearch.ThresholdDegrees = cfg.Corridor.ThresholdDegrees
	corridorSearch.Workers = cfg.Corridor.Workers

	directory := providers.NewDirectory(table, geo, resultCache)

	log.Debug().
		Int("stations", len(stations)).
		Int("providers", len(table)).
		Float64("threshold", corridorSearch.ThresholdDegrees).
		Bool("cache", resultCache != nil).
		Msg("Session components ready")

	return &Services{
		Planner:   New(locationResolver, transit, corridorSearch, directory),
		Resolver:  locationResolver,
		Corridor:  corridorSearch,
		Providers: directory,

		CacheEnabled: resultCache != nil,
	}, nil
}
