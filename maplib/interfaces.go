package maplib

import (
	"context"
	"net"
	"net/http"
)

// HTTPClient is an interface for HTTP client which is used by providers
// to access upstream APIs.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Geolocator resolves an IP address into geographic location. If ip is
// nil, then provider has to geolocate an address of the requester.
type Geolocator interface {
	Name() string
	Locate(ctx context.Context, ip net.IP) (GeoLookupResult, error)
}

// MapsAPI is an upstream which can search for places and build routes.
// Credential returns a provisioned API key. An empty string means that
// API is not configured.
type MapsAPI interface {
	Name() string
	Credential() string
	TextSearch(ctx context.Context, req TextSearchRequest) (TextSearchResponse, error)
	Directions(ctx context.Context, req DirectionsRequest) (DirectionsResponse, error)
}

type Logger interface {
	LocationError(identifier string, err error)
	PlacesError(query, location string, err error)
	DirectionsError(origin, destination string, err error)
	CacheHit(identifier string)
}

type noopLogger struct{}

func (noopLogger) LocationError(string, error)           {}
func (noopLogger) PlacesError(string, string, error)     {}
func (noopLogger) DirectionsError(string, string, error) {}
func (noopLogger) CacheHit(string)                       {}
