package maplib

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "cartographer"

// Metrics is a set of prometheus collectors for cartographer operations.
type Metrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	cache      *prometheus.CounterVec
}

func (m *Metrics) observe(operation string, started time.Time, err error) {
	m.operations.WithLabelValues(operation, metricsResult(err)).Inc()
	m.durations.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) cacheLookup(cached bool) {
	if cached {
		m.cache.WithLabelValues("hit").Inc()
	} else {
		m.cache.WithLabelValues("miss").Inc()
	}
}

func metricsResult(err error) string {
	var upstreamErr *UpstreamError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &upstreamErr):
		return "upstream_error"
	case errors.Is(err, ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, ErrNoRouteFound):
		return "no_route"
	case errors.Is(err, ErrLocationRequired), errors.Is(err, ErrLocationUnavailable):
		return "location_error"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	}

	return "error"
}

// NewMetrics creates collectors and registers them in registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	rv := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "A number of executed operations by result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent to execute an operation, including upstream call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "location_cache_lookups_total",
			Help:      "A number of location cache lookups by result.",
		}, []string{"result"}),
	}

	registerer.MustRegister(rv.operations, rv.durations, rv.cache)

	return rv
}
