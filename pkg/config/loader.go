// Package config loads the borderhop configuration from an optional YAML file
// and BORDERHOP_ environment variables, in that order of precedence (lowest first)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/borderhop/pkg/util"
	"gopkg.in/yaml.v3"
)

const EnvironmentPrefix = "BORDERHOP_"

const DefaultPath = "borderhop.yml"

func Default() AppConfig {
	return AppConfig{
		Transit: TransitConfig{
			BaseURL: "https://transport.opendata.ch/v1",
		},
		Geocoder: GeocoderConfig{
			BaseURL: "https://nominatim.openstreetmap.org",
		},
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			Retries:       5,
			BackoffFactor: 100 * time.Millisecond,
			UserAgent:     "borderhop/1.0",
		},
		Corridor: CorridorConfig{
			ThresholdDegrees: 20,
			Workers:          4,
			StationsFile:     "reachable_stations.json",
		},
		Providers: ProvidersConfig{
			File: "local_providers.json",
		},
		Redis: RedisConfig{
			Expiration: 90 * time.Minute,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}

		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnvironment(&cfg, util.GetPrefixedEnvironmentVariables(EnvironmentPrefix)); err != nil {
		return cfg, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnvironment(cfg *AppConfig, env map[string]string) error {
	stringValues := map[string]*string{
		"TRANSIT_URL":    &cfg.Transit.BaseURL,
		"GEOCODER_URL":   &cfg.Geocoder.BaseURL,
		"USER_AGENT":     &cfg.HTTP.UserAgent,
		"STATIONS_FILE":  &cfg.Corridor.StationsFile,
		"PROVIDERS_FILE": &cfg.Providers.File,
		"REDIS_ADDRESS":  &cfg.Redis.Address,
		"REDIS_PASSWORD": &cfg.Redis.Password,
	}
	for name, target := range stringValues {
		if value, ok := env[name]; ok {
			*target = value
		}
	}

	ints := map[string]*int{
		"HTTP_RETRIES":     &cfg.HTTP.Retries,
		"CORRIDOR_WORKERS": &cfg.Corridor.Workers,
		"REDIS_DATABASE":   &cfg.Redis.Database,
	}
	for name, target := range ints {
		if value, ok := env[name]; ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvironmentPrefix, name, err)
			}
			*target = n
		}
	}

	durations := map[string]*time.Duration{
		"HTTP_TIMEOUT":        &cfg.HTTP.Timeout,
		"HTTP_BACKOFF_FACTOR": &cfg.HTTP.BackoffFactor,
	}
	for name, target := range durations {
		if value, ok := env[name]; ok {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvironmentPrefix, name, err)
			}
			*target = d
		}
	}

	if value, ok := env["CORRIDOR_THRESHOLD"]; ok {
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%sCORRIDOR_THRESHOLD: %w", EnvironmentPrefix, err)
		}
		cfg.Corridor.ThresholdDegrees = threshold
	}

	return nil
}
