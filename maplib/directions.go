package maplib

import (
	"context"
	"fmt"
	"regexp"
)

type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"

	DefaultTravelMode = TravelModeDriving
)

var (
	travelModeFlags = map[TravelMode]string{
		TravelModeDriving:   "",
		TravelModeWalking:   "w",
		TravelModeBicycling: "b",
		TravelModeTransit:   "r",
	}

	// not a parser: literal angle brackets in text are stripped too.
	markupTagRegexp = regexp.MustCompile(`<[^>]+>`)
)

// Valid checks if travel mode is supported by routing upstream.
func (t TravelMode) Valid() bool {
	_, ok := travelModeFlags[t]

	return ok
}

// ParseTravelMode parses a travel mode. An empty value means
// DefaultTravelMode.
func ParseTravelMode(value string) (TravelMode, error) {
	if value == "" {
		return DefaultTravelMode, nil
	}

	mode := TravelMode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unsupported travel mode %q", ErrInvalidRequest, value)
	}

	return mode, nil
}

type DirectionsFinder struct {
	maps MapsAPI
}

// GetDirections builds a route between origin and destination.
//
// Only the first leg of the first route is reported. Multi-route and
// multi-leg responses are not aggregated.
func (d *DirectionsFinder) GetDirections(ctx context.Context,
	origin, destination string,
	mode TravelMode) (DirectionsSummary, error) {
	if d.maps.Credential() == "" {
		return DirectionsSummary{}, ErrConfiguration
	}

	if mode == "" {
		mode = DefaultTravelMode
	}

	if !mode.Valid() {
		return DirectionsSummary{}, fmt.Errorf("%w: unsupported travel mode %q", ErrInvalidRequest, mode)
	}

	resp, err := d.maps.Directions(ctx, DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	})
	if err != nil {
		return DirectionsSummary{}, fmt.Errorf("cannot get directions: %w", err)
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults, statusNotFound:
		// Deliberately 404 instead of an UpstreamError: the request was
		// valid, there is just no route between these points.
		return DirectionsSummary{}, ErrNoRouteFound
	default:
		message := resp.ErrorMessage
		if message == "" {
			message = "Could not find route"
		}

		return DirectionsSummary{}, &UpstreamError{
			Service: "Directions",
			Status:  resp.Status,
			Message: message,
		}
	}

	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return DirectionsSummary{}, ErrNoRouteFound
	}

	leg := resp.Routes[0].Legs[0]
	steps := leg.Steps

	if len(steps) > MaxResults {
		steps = steps[:MaxResults]
	}

	rv := DirectionsSummary{
		Origin:        origin,
		Destination:   destination,
		Mode:          mode,
		Distance:      leg.Distance,
		Duration:      leg.Duration,
		DirectionsURL: travelDirectionsURL(origin, destination, mode),
		Steps:         make([]DirectionsStep, 0, len(steps)),
		TotalSteps:    len(leg.Steps),
	}

	for _, v := range steps {
		rv.Steps = append(rv.Steps, DirectionsStep{
			Instruction: StripMarkup(v.HTMLInstructions),
			Distance:    v.Distance,
		})
	}

	return rv, nil
}

// StripMarkup removes everything between < and > from the text.
func StripMarkup(text string) string {
	return markupTagRegexp.ReplaceAllString(text, "")
}

func travelDirectionsURL(origin, destination string, mode TravelMode) string {
	rv := directionsURL(origin, destination)

	if flag := travelModeFlags[mode]; flag != "" {
		rv += "?dirflg=" + flag
	}

	return rv
}

func NewDirectionsFinder(maps MapsAPI) *DirectionsFinder {
	return &DirectionsFinder{
		maps: maps,
	}
}
