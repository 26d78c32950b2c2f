// Package presenter renders route plans as text for the terminal
package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/travigo/borderhop/pkg/ctdf"
)

const (
	timestampLayout = "Mon 02 Jan 15:04 MST"
	notAvailable    = "not available"
)

// Render writes one block per route option. Plans without options always
// produce an explanatory message.
func Render(w io.Writer, plan *ctdf.RoutePlan) error {
	var builder strings.Builder

	switch {
	case plan.State == ctdf.PlanStateSameLocation:
		fmt.Fprintf(&builder, "Origin and destination are the same place (%s).\n", plan.Origin.Name)
	case len(plan.Options) == 0:
		fmt.Fprintf(&builder, "No suitable connection found from %s to %s.\n", plan.Origin.Name, plan.Destination.Name)
	case plan.IsDirect():
		builder.WriteString("Your connection is:\n\n")
		writeDirect(&builder, plan.Options[0])
	default:
		builder.WriteString("No direct connection found. Your intermediate connections are:\n")
		for _, option := range plan.Options {
			builder.WriteString("\n")
			writeIntermediate(&builder, option)
		}
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeDirect(builder *strings.Builder, option ctdf.RouteOption) {
	builder.WriteString("(Direct)\n")
	writeLeg(builder, option.Connection)
}

func writeIntermediate(builder *strings.Builder, option ctdf.RouteOption) {
	station := option.Connection.To.Station.Name
	if option.Via != nil {
		station = option.Via.Name
	}

	fmt.Fprintf(builder, "(Intermediate via %s)\n", station)
	writeLeg(builder, option.Connection)

	fmt.Fprintf(builder, "  Coverage:  %.1f km of %.1f km (%.1f%%)\n", option.CoveredKm, option.TotalKm, option.Percentage)

	if option.Provider == nil {
		fmt.Fprintf(builder, "  Local provider lookup failed for %s\n", station)
		return
	}

	fmt.Fprintf(builder, "  Continue your journey from %s using %s", station, option.Provider.Name)
	if option.Provider.URL != "" {
		fmt.Fprintf(builder, " (%s)", option.Provider.URL)
	}
	builder.WriteString("\n")
}

func writeLeg(builder *strings.Builder, connection ctdf.Connection) {
	fmt.Fprintf(builder, "  From:      %s\n", connection.From.Station.Name)
	fmt.Fprintf(builder, "  To:        %s\n", connection.To.Station.Name)
	fmt.Fprintf(builder, "  Departure: %s%s\n", formatTimestamp(connection.From.Departure), formatDelay(connection.From.Delay))
	fmt.Fprintf(builder, "  Arrival:   %s%s\n", formatTimestamp(connection.To.Arrival), formatDelay(connection.To.Delay))
	fmt.Fprintf(builder, "  Platform:  %s\n", formatPlatform(connection.From.Platform))
	fmt.Fprintf(builder, "  Duration:  %s\n", formatDuration(connection.Duration))
}

func formatTimestamp(timestamp time.Time) string {
	if timestamp.IsZero() {
		return notAvailable
	}

	return timestamp.Format(timestampLayout)
}

func formatDelay(delay *int) string {
	if delay == nil || *delay == 0 {
		return ""
	}

	return fmt.Sprintf(" (%+d min)", *delay)
}

func formatPlatform(platform string) string {
	if strings.TrimSpace(platform) == "" {
		return notAvailable
	}

	return platform
}

func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return notAvailable
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
