package ctdf

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GeocodedLocationID marks a Location that was resolved by the geocoder only and
// is not a station on the transit network
const GeocodedLocationID = -1

type Coordinate struct {
	Type      string  `json:"type" groups:"basic"`
	Latitude  float64 `json:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" groups:"basic"`
}

// UnmarshalJSON accepts both the transit API shape ({x, y}) and the
// latitude/longitude shape written to station snapshots
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      string   `json:"type"`
		X         *float64 `json:"x"`
		Y         *float64 `json:"y"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Type = raw.Type

	switch {
	case raw.Latitude != nil && raw.Longitude != nil:
		c.Latitude = *raw.Latitude
		c.Longitude = *raw.Longitude
	case raw.X != nil && raw.Y != nil:
		c.Latitude = *raw.X
		c.Longitude = *raw.Y
	default:
		return fmt.Errorf("coordinate is missing latitude/longitude")
	}

	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Latitude, c.Longitude)
}

type Location struct {
	ID         int         `json:"id" groups:"basic"`
	Name       string      `json:"name" groups:"basic"`
	Coordinate *Coordinate `json:"coordinate" groups:"basic"`

	Score    *int   `json:"score,omitempty" groups:"detailed"`
	Distance *int   `json:"distance,omitempty" groups:"detailed"`
	Icon     string `json:"icon,omitempty" groups:"detailed"`
}

// UnmarshalJSON handles the transit API sending station ids as strings and
// coordinates with null components for non-geolocated entries
func (l *Location) UnmarshalJSON(data []byte) error {
	type locationAlias Location
	var raw struct {
		locationAlias
		ID         json.RawMessage `json:"id"`
		Coordinate json.RawMessage `json:"coordinate"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = Location(raw.locationAlias)

	id, err := parseLocationID(raw.ID)
	if err != nil {
		return err
	}
	l.ID = id

	l.Coordinate = nil
	if len(raw.Coordinate) > 0 && string(raw.Coordinate) != "null" {
		var coordinate Coordinate
		if err := json.Unmarshal(raw.Coordinate, &coordinate); err == nil {
			l.Coordinate = &coordinate
		}
	}

	return nil
}

func parseLocationID(raw json.RawMessage) (int, error) {
	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)

	if value == "" || value == "null" {
		return 0, nil
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid location id %s: %w", raw, err)
	}

	return id, nil
}

// IsGeocoded reports whether the location only carries geocoder coordinates
func (l *Location) IsGeocoded() bool {
	return l.ID == GeocodedLocationID
}

func (l *Location) HasCoordinate() bool {
	return l != nil && l.Coordinate != nil
}
