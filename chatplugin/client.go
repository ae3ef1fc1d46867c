package chatplugin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/9seconds/cartographer/maplib"
)

const (
	// DefaultBackendURL is an address of the backend in a usual
	// docker-compose setup.
	DefaultBackendURL = "http://maps-backend:8000"

	LocationTimeout   = 10 * time.Second
	NearbyTimeout     = 15 * time.Second
	DirectionsTimeout = 15 * time.Second
)

type locationResponse struct {
	Location string `json:"location"`
}

// Client is an HTTP client of cartographer backend.
type Client struct {
	baseURL string
	http    maplib.HTTPClient
}

// UserLocation returns a human readable location of the user. It never
// fails: an error is rendered into returned text.
func (c *Client) UserLocation(ctx context.Context) string {
	resp := locationResponse{}

	if err := c.get(ctx, LocationTimeout, "/location", nil, &resp); err != nil {
		return "❌ Error getting location: " + err.Error()
	}

	return resp.Location
}

// FindNearby searches for places. An empty location means that backend
// has to detect it.
func (c *Client) FindNearby(ctx context.Context, query, location string) (NearbyAnswer, error) {
	params := url.Values{}
	params.Set("query", query)

	if location != "" {
		params.Set("location", location)
	}

	result := maplib.PlacesResult{}

	if err := c.get(ctx, NearbyTimeout, "/places/nearby", params, &result); err != nil {
		return NearbyAnswer{}, fmt.Errorf("cannot find places: %w", err)
	}

	return RenderPlaces(result), nil
}

// Directions builds a route between 2 points and renders it as
// markdown. An empty mode means driving.
func (c *Client) Directions(ctx context.Context, origin, destination string, mode maplib.TravelMode) (string, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)

	if mode != "" {
		params.Set("mode", string(mode))
	}

	summary := maplib.DirectionsSummary{}

	if err := c.get(ctx, DirectionsTimeout, "/places/directions", params, &summary); err != nil {
		return "", fmt.Errorf("cannot get directions: %w", err)
	}

	return RenderDirections(summary), nil
}

func (c *Client) get(ctx context.Context,
	timeout time.Duration,
	path string,
	params url.Values,
	target interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %w", maplib.ErrMalformedResponse, err)
	}

	return nil
}

// NewClient returns a client of backend which is accessible by
// baseURL. Each call has its own timeout so client should not set a
// global one.
func NewClient(baseURL string, client maplib.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}
