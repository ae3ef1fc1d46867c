package main

import (
	"io"
	"net/http"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type logger struct {
	base          zerolog.Logger
	locationLog   zerolog.Logger
	placesLog     zerolog.Logger
	directionsLog zerolog.Logger
	cacheLog      zerolog.Logger
}

func (l *logger) LocationError(identifier string, err error) {
	l.locationLog.Error().Str("identifier", identifier).Err(err).Msg("")
}

func (l *logger) PlacesError(query, location string, err error) {
	l.placesLog.Error().Str("query", query).Str("location", location).Err(err).Msg("")
}

func (l *logger) DirectionsError(origin, destination string, err error) {
	l.directionsLog.Error().Str("origin", origin).Str("destination", destination).Err(err).Msg("")
}

func (l *logger) CacheHit(identifier string) {
	l.cacheLog.Debug().Str("identifier", identifier).Msg("Location is taken from cache")
}

func (l *logger) Info(msg string) {
	l.base.Info().Msg(msg)
}

func (l *logger) Fatal(err error, msg string) {
	l.base.Fatal().Err(err).Msg(msg)
}

// Middlewares returns a chain which attaches a request logger, request
// id and remote address to each request and writes an access log.
func (l *logger) Middlewares() []func(http.Handler) http.Handler {
	accessLog := l.base.With().Str("event_name", "access").Logger()

	return []func(http.Handler) http.Handler{
		hlog.NewHandler(accessLog),
		hlog.RemoteAddrHandler("remote_addr"),
		hlog.RequestIDHandler("request_id", "X-Request-Id"),
		hlog.AccessHandler(func(req *http.Request, status, size int, elapsed time.Duration) {
			hlog.FromRequest(req).Info().
				Str("method", req.Method).
				Stringer("url", req.URL).
				Int("status", status).
				Int("size", size).
				Dur("elapsed", elapsed).
				Msg("")
		}),
	}
}

func newLogger(out io.Writer, debug bool) *logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	base := zerolog.New(out).Level(level).With().Timestamp().Logger()

	return &logger{
		base:          base,
		locationLog:   base.With().Stack().Str("event_name", maplib.OperationLocation).Logger(),
		placesLog:     base.With().Stack().Str("event_name", maplib.OperationPlaces).Logger(),
		directionsLog: base.With().Stack().Str("event_name", maplib.OperationDirections).Logger(),
		cacheLog:      base.With().Str("event_name", "cache").Logger(),
	}
}
