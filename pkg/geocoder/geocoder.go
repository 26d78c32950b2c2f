// Package geocoder resolves free text places to coordinates and coordinates
// to countries against a Nominatim compatible service
package geocoder

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/httpclient"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

var ErrGeocodeFailure = errors.New("geocoding service failure")

type Client struct {
	BaseURL string

	http *httpclient.Client
}

func New(baseURL string, options httpclient.Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpclient.New("geocoder", options),
	}
}

type Place struct {
	Name       string
	Coordinate ctdf.Coordinate
}

type searchResult struct {
	Latitude    string `json:"lat"`
	Longitude   string `json:"lon"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

type reverseResult struct {
	Error   string `json:"error"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Geocode returns the best match for the query, or nil if nothing matched
func (c *Client) Geocode(ctx context.Context, query string) (*Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	var results []searchResult
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/search", c.BaseURL), params, &results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeocodeFailure, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	latitude, err := strconv.ParseFloat(results[0].Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude %q", ErrGeocodeFailure, results[0].Latitude)
	}
	longitude, err := strconv.ParseFloat(results[0].Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude %q", ErrGeocodeFailure, results[0].Longitude)
	}

	name := results[0].Name
	if name == "" {
		name = query
	}

	return &Place{
		Name: name,
		Coordinate: ctdf.Coordinate{
			Type:      "WGS84",
			Latitude:  latitude,
			Longitude: longitude,
		},
	}, nil
}

// ReverseCountry returns the upper case ISO 3166-1 alpha-2 code of the
// country containing the coordinate
func (c *Client) ReverseCountry(ctx context.Context, coordinate ctdf.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coordinate.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coordinate.Longitude, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("zoom", "3")

	var result reverseResult
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/reverse", c.BaseURL), params, &result); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeocodeFailure, err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrGeocodeFailure, result.Error)
	}

	if result.Address.CountryCode == "" {
		return "", fmt.Errorf("%w: no country for %s", ErrGeocodeFailure, coordinate)
	}

	return strings.ToUpper(result.Address.CountryCode), nil
}
