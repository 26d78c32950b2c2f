package ctdf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamps from the transit API carry an offset without a colon
const apiTimestampLayout = "2006-01-02T15:04:05-0700"

type ConnectionLeg struct {
	Station   Location  `json:"station"`
	Departure time.Time `json:"departure"`
	Delay     *int      `json:"delay"`
	Platform  string    `json:"platform"`
}

type ConnectionArrival struct {
	Station  Location  `json:"station"`
	Arrival  time.Time `json:"arrival"`
	Delay    *int      `json:"delay"`
	Platform *string   `json:"platform"`
}

type Connection struct {
	From     ConnectionLeg     `json:"from"`
	To       ConnectionArrival `json:"to"`
	Duration time.Duration     `json:"-"`
}

func (c *Connection) UnmarshalJSON(data []byte) error {
	var raw struct {
		From struct {
			Station   Location `json:"station"`
			Departure string   `json:"departure"`
			Delay     *int     `json:"delay"`
			Platform  *string  `json:"platform"`
		} `json:"from"`
		To struct {
			Station  Location `json:"station"`
			Arrival  string   `json:"arrival"`
			Delay    *int     `json:"delay"`
			Platform *string  `json:"platform"`
		} `json:"to"`
		Duration string `json:"duration"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	departure, err := ParseTimestamp(raw.From.Departure)
	if err != nil {
		return fmt.Errorf("departure: %w", err)
	}

	arrival, err := ParseTimestamp(raw.To.Arrival)
	if err != nil {
		return fmt.Errorf("arrival: %w", err)
	}

	duration, err := ParseDuration(raw.Duration)
	if err != nil {
		return err
	}

	platform := ""
	if raw.From.Platform != nil {
		platform = *raw.From.Platform
	}

	*c = Connection{
		From: ConnectionLeg{
			Station:   raw.From.Station,
			Departure: departure,
			Delay:     raw.From.Delay,
			Platform:  platform,
		},
		To: ConnectionArrival{
			Station:  raw.To.Station,
			Arrival:  arrival,
			Delay:    raw.To.Delay,
			Platform: raw.To.Platform,
		},
		Duration: duration,
	}

	return nil
}

func (c Connection) MarshalJSON() ([]byte, error) {
	type connectionJSON struct {
		From     ConnectionLeg     `json:"from"`
		To       ConnectionArrival `json:"to"`
		Duration string            `json:"duration"`
	}

	return json.Marshal(connectionJSON{
		From:     c.From,
		To:       c.To,
		Duration: FormatDuration(c.Duration),
	})
}

func ParseTimestamp(value string) (time.Time, error) {
	if timestamp, err := time.Parse(apiTimestampLayout, value); err == nil {
		return timestamp, nil
	}

	return time.Parse(time.RFC3339, value)
}

// ParseDuration reads the transit API duration format DDdHH:MM:SS
func ParseDuration(value string) (time.Duration, error) {
	var days, hours, minutes, seconds int

	if _, err := fmt.Sscanf(value, "%dd%d:%d:%d", &days, &hours, &minutes, &seconds); err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, nil
}

func FormatDuration(duration time.Duration) string {
	totalSeconds := int(duration.Seconds())

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02dd%02d:%02d:%02d", days, hours, minutes, seconds)
}
