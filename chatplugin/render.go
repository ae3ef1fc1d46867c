package chatplugin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/9seconds/cartographer/maplib"
)

// NearbyAnswer is a chat answer for place search. EmbedHTML is emitted
// as a separate message and is empty if there is nothing to show on a
// map.
type NearbyAnswer struct {
	Text      string
	EmbedHTML string
}

func (n NearbyAnswer) String() string {
	if n.EmbedHTML == "" {
		return n.Text
	}

	return n.Text + n.EmbedHTML
}

func RenderPlaces(result maplib.PlacesResult) NearbyAnswer {
	if result.Count == 0 {
		return NearbyAnswer{Text: result.Message}
	}

	builder := strings.Builder{}

	fmt.Fprintf(&builder, "📍 **Found %d %s near %s**\n\n", result.Count, result.Query, result.Location)

	for i, place := range result.Places {
		fmt.Fprintf(&builder, "**%d. %s**\n", i+1, place.Name)
		fmt.Fprintf(&builder, "📍 %s\n", place.Address)

		if place.Rating != nil && *place.Rating > 0 {
			fmt.Fprintf(&builder, "⭐ Rating: %s/5 %s\n",
				strconv.FormatFloat(*place.Rating, 'f', -1, 64),
				strings.Repeat("⭐", int(*place.Rating)))
		}

		fmt.Fprintf(&builder, "🗺️ [View on Maps](%s)\n", place.MapsURL)
		fmt.Fprintf(&builder, "🧭 [Get Directions](%s)\n\n", place.DirectionsURL)
	}

	rv := NearbyAnswer{Text: builder.String()}

	if result.EmbedMapURL != "" {
		rv.EmbedHTML = "```html\n" +
			`<iframe src="` + result.EmbedMapURL +
			`" width="100%" height="720" frameborder="0" allowfullscreen></iframe>` +
			"\n```\n"
	}

	return rv
}

func RenderDirections(summary maplib.DirectionsSummary) string {
	builder := strings.Builder{}

	fmt.Fprintf(&builder, "🧭 **Directions from %s to %s** (%s)\n\n",
		summary.Origin, summary.Destination, summary.Mode)
	fmt.Fprintf(&builder, "📏 Distance: %s\n", summary.Distance)
	fmt.Fprintf(&builder, "⏱️ Duration: %s\n\n", summary.Duration)

	for i, step := range summary.Steps {
		fmt.Fprintf(&builder, "%d. %s (%s)\n", i+1, step.Instruction, step.Distance)
	}

	if rest := summary.TotalSteps - len(summary.Steps); rest > 0 {
		fmt.Fprintf(&builder, "... and %d more steps\n", rest)
	}

	if len(summary.Steps) > 0 {
		builder.WriteString("\n")
	}

	fmt.Fprintf(&builder, "🗺️ [Open in Google Maps](%s)\n", summary.DirectionsURL)

	return builder.String()
}

// RenderError converts an error of the client into a chat message.
func RenderError(err error) string {
	if errors.Is(err, maplib.ErrNetwork) {
		return "❌ Network error: " + err.Error()
	}

	return "❌ Error: " + err.Error()
}
