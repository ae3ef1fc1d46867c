package maplib

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationLocation   = "location"
	OperationPlaces     = "places"
	OperationDirections = "directions"
)

type Cartographer struct {
	logger     Logger
	metrics    *Metrics
	locations  *LocationResolver
	places     *PlacesFinder
	directions *DirectionsFinder
	stats      map[string]*UsageStats
	handler    http.Handler
}

func (c *Cartographer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c.handler.ServeHTTP(w, req)
}

func (c *Cartographer) Resolve(ctx context.Context, identifier string) (Location, error) {
	started := time.Now()
	location, err := c.locations.Resolve(ctx, identifier)

	c.done(OperationLocation, started, err)

	if err != nil {
		c.logger.LocationError(identifier, err)

		return location, err
	}

	c.metrics.cacheLookup(location.Cached)

	if location.Cached {
		c.logger.CacheHit(identifier)
	}

	return location, nil
}

func (c *Cartographer) FindNearby(ctx context.Context, query, location string) (PlacesResult, error) {
	started := time.Now()
	result, err := c.places.FindNearby(ctx, query, location)

	c.done(OperationPlaces, started, err)

	if err != nil {
		c.logger.PlacesError(query, location, err)
	}

	return result, err
}

func (c *Cartographer) GetDirections(ctx context.Context,
	origin, destination string,
	mode TravelMode) (DirectionsSummary, error) {
	started := time.Now()
	summary, err := c.directions.GetDirections(ctx, origin, destination, mode)

	c.done(OperationDirections, started, err)

	if err != nil {
		c.logger.DirectionsError(origin, destination, err)
	}

	return summary, err
}

// UsageStats returns statistics of each operation.
func (c *Cartographer) UsageStats() []*UsageStats {
	return []*UsageStats{
		c.stats[OperationLocation],
		c.stats[OperationPlaces],
		c.stats[OperationDirections],
	}
}

func (c *Cartographer) done(operation string, started time.Time, err error) {
	c.stats[operation].Used(err)
	c.metrics.observe(operation, started, err)
}

type Opts struct {
	Geolocator Geolocator
	MapsAPI    MapsAPI

	// Logger is optional, nothing is logged if it is nil.
	Logger            Logger
	LocationCache     *LocationCache
	LocationCacheTTL  time.Duration
	MetricsRegisterer prometheus.Registerer

	// Now is a clock of location cache. time.Now if nil.
	Now func() time.Time
}

func NewCartographer(opts Opts) *Cartographer {
	cache := opts.LocationCache
	if cache == nil {
		cache = NewLocationCache(DefaultLocationCacheSize)
	}

	registerer := opts.MetricsRegisterer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	resolver := NewLocationResolver(opts.Geolocator, cache, opts.LocationCacheTTL, opts.Now)
	rv := &Cartographer{
		logger:     logger,
		metrics:    NewMetrics(registerer),
		locations:  resolver,
		places:     NewPlacesFinder(opts.MapsAPI, resolver),
		directions: NewDirectionsFinder(opts.MapsAPI),
		stats: map[string]*UsageStats{
			OperationLocation:   {Name: OperationLocation},
			OperationPlaces:     {Name: OperationPlaces},
			OperationDirections: {Name: OperationDirections},
		},
	}

	rv.handler = NewHTTPHandler(rv)

	return rv
}
