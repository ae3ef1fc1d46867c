package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/9seconds/cartographer/maplib"
)

const googleMapsBaseURL = "https://maps.googleapis.com/maps/api"

type googleTextSearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		PlaceID          string   `json:"place_id"`
		Rating           *float64 `json:"rating"`
	} `json:"results"`
}

type googleTextValue struct {
	Text string `json:"text"`
}

type googleDirectionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance googleTextValue `json:"distance"`
			Duration googleTextValue `json:"duration"`
			Steps    []struct {
				HTMLInstructions string          `json:"html_instructions"`
				Distance         googleTextValue `json:"distance"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type googleMapsProvider struct {
	client  maplib.HTTPClient
	apiKey  string
	baseURL string
}

func (g googleMapsProvider) Name() string {
	return NameGoogleMaps
}

func (g googleMapsProvider) Credential() string {
	return g.apiKey
}

func (g googleMapsProvider) TextSearch(ctx context.Context,
	request maplib.TextSearchRequest) (maplib.TextSearchResponse, error) {
	result := maplib.TextSearchResponse{}
	params := url.Values{}

	params.Set("query", request.Query)
	params.Set("radius", strconv.Itoa(request.Radius))

	jsonResponse := googleTextSearchResponse{}
	if err := g.get(ctx, "/place/textsearch/json", params, &jsonResponse); err != nil {
		return result, err
	}

	result.Status = jsonResponse.Status
	result.ErrorMessage = jsonResponse.ErrorMessage
	result.Results = make([]maplib.PlaceRecord, 0, len(jsonResponse.Results))

	for _, v := range jsonResponse.Results {
		result.Results = append(result.Results, maplib.PlaceRecord{
			Name:             v.Name,
			FormattedAddress: v.FormattedAddress,
			PlaceID:          v.PlaceID,
			Rating:           v.Rating,
		})
	}

	return result, nil
}

func (g googleMapsProvider) Directions(ctx context.Context,
	request maplib.DirectionsRequest) (maplib.DirectionsResponse, error) {
	result := maplib.DirectionsResponse{}
	params := url.Values{}

	params.Set("origin", request.Origin)
	params.Set("destination", request.Destination)
	params.Set("mode", string(request.Mode))

	jsonResponse := googleDirectionsResponse{}
	if err := g.get(ctx, "/directions/json", params, &jsonResponse); err != nil {
		return result, err
	}

	result.Status = jsonResponse.Status
	result.ErrorMessage = jsonResponse.ErrorMessage
	result.Routes = make([]maplib.Route, 0, len(jsonResponse.Routes))

	for _, route := range jsonResponse.Routes {
		legs := make([]maplib.RouteLeg, 0, len(route.Legs))

		for _, leg := range route.Legs {
			steps := make([]maplib.RouteStep, 0, len(leg.Steps))

			for _, step := range leg.Steps {
				steps = append(steps, maplib.RouteStep{
					HTMLInstructions: step.HTMLInstructions,
					Distance:         step.Distance.Text,
				})
			}

			legs = append(legs, maplib.RouteLeg{
				Distance: leg.Distance.Text,
				Duration: leg.Duration.Text,
				Steps:    steps,
			})
		}

		result.Routes = append(result.Routes, maplib.Route{Legs: legs})
	}

	return result, nil
}

func (g googleMapsProvider) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d", maplib.ErrNetwork, resp.StatusCode)
	}

	if err := decodeResponse(resp.Body, target); err != nil {
		return fmt.Errorf("cannot parse a response: %w", err)
	}

	return nil
}

// NewGoogleMaps returns a client of Google Maps Places Text Search and
// Directions APIs. An empty apiKey is allowed here: operations which
// need Maps API fail with maplib.ErrConfiguration then.
func NewGoogleMaps(client maplib.HTTPClient, apiKey string) maplib.MapsAPI {
	return googleMapsProvider{
		client:  client,
		apiKey:  apiKey,
		baseURL: googleMapsBaseURL,
	}
}
