package network

import (
	"fmt"
	"strings"
)

// maxTableChars keeps the rendered table under the 2000-character message
// limit of chat surfaces.
const maxTableChars = 1900

const nameWidth = 22

// FormatTable renders a run result as a fixed-width rank table suitable
// for monospace display (terminal or chat code block).
func FormatTable(r *Result) string {
	if len(r.Airports) == 0 {
		return fmt.Sprintf(
			"No airports found matching the criteria (openness >= %d, distance <= %.0f km).",
			r.Params.MinOpenness, r.Params.MaxDistanceKm,
		)
	}

	var b strings.Builder
	header := "Rank | IATA | Name                   | CC(Open) | Dist(km) | Pop     | Income | CompSeats | BOS"
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))

	for i, a := range r.Airports {
		name := a.Name
		if len(name) > nameWidth {
			name = name[:nameWidth]
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%4d | %-4s | %-*s | %2s(%2d)   | %8.1f | %7.0f | %6.0f | %9.0f | %6.2f",
			i+1, a.IATA, nameWidth, name, a.CountryCode, a.Openness,
			a.DistanceKm, a.Population, a.Income, a.CompetitionSeats, a.BOS,
		)
	}

	table := b.String()
	if len(table) > maxTableChars {
		table = table[:maxTableChars] + "..."
	}
	return table
}
