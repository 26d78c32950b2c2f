package config

import "time"

type TransitConfig struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

type GeocoderConfig struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

// HTTPConfig applies to every outbound service call
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	Retries       int           `yaml:"retries" validate:"gte=3"`
	BackoffFactor time.Duration `yaml:"backoffFactor" validate:"gte=0"`
	UserAgent     string        `yaml:"userAgent" validate:"required"`
}

type CorridorConfig struct {
	ThresholdDegrees float64 `yaml:"thresholdDegrees" validate:"gt=0,lte=180"`
	Workers          int     `yaml:"workers" validate:"gte=1,lte=64"`
	StationsFile     string  `yaml:"stationsFile" validate:"required"`
}

type ProvidersConfig struct {
	File string `yaml:"file" validate:"required"`
}

type RedisConfig struct {
	Address    string        `yaml:"address" validate:"omitempty,hostname_port"`
	Password   string        `yaml:"password"`
	Database   int           `yaml:"database" validate:"gte=0"`
	Expiration time.Duration `yaml:"expiration" validate:"gte=0"`
}

type AppConfig struct {
	Transit   TransitConfig   `yaml:"transit"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	HTTP      HTTPConfig      `yaml:"http"`
	Corridor  CorridorConfig  `yaml:"corridor"`
	Providers ProvidersConfig `yaml:"providers"`
	Redis     RedisConfig     `yaml:"redis"`
}
