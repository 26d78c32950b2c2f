// Package transitapi talks to a transport.opendata.ch style connection service
package transitapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/httpclient"
)

const DefaultBaseURL = "https://transport.opendata.ch/v1"

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
		http:    httpclient.New("transit", options),
	}
}

type connectionsResponse struct {
	Connections []ctdf.Connection `json:"connections"`
}

type locationsResponse struct {
	Stations []ctdf.Location `json:"stations"`
}

// GetNextConnection returns the next connection between the two named places,
// or nil if the service knows of none
func (c *Client) GetNextConnection(ctx context.Context, origin string, destination string) (*ctdf.Connection, error) {
	params := url.Values{}
	params.Set("from", origin)
	params.Set("to", destination)
	params.Set("limit", strconv.Itoa(1))

	var response connectionsResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/connections", c.BaseURL), params, &response); err != nil {
		return nil, err
	}

	if len(response.Connections) == 0 {
		log.Debug().Str("from", origin).Str("to", destination).Msg("No connection found")
		return nil, nil
	}

	connection := response.Connections[0]
	return &connection, nil
}

// GetLocation looks the name up as a station, returning nil if it is unknown
func (c *Client) GetLocation(ctx context.Context, name string) (*ctdf.Location, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("type", "station")
	params.Set("limit", strconv.Itoa(1))

	var response locationsResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/locations", c.BaseURL), params, &response); err != nil {
		return nil, err
	}

	if len(response.Stations) == 0 {
		return nil, nil
	}

	station := response.Stations[0]

	// Unmatched queries come back as a single entry with no id or position
	if station.ID == 0 && station.Coordinate == nil {
		return nil, nil
	}

	return &station, nil
}
