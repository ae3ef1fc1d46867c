package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/9seconds/cartographer/providers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const (
	serverReadHeaderTimeout = 10 * time.Second
	serverShutdownTimeout   = 15 * time.Second
)

func makeHandler(conf *config, log *logger, geolocator maplib.Geolocator, mapsAPI maplib.MapsAPI) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	carto := maplib.NewCartographer(maplib.Opts{
		Geolocator:        geolocator,
		MapsAPI:           mapsAPI,
		Logger:            log,
		LocationCache:     maplib.NewLocationCache(conf.GetLocationCacheSize()),
		LocationCacheTTL:  conf.GetLocationCacheTTL(),
		MetricsRegisterer: registry,
	})

	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(log.Middlewares()...)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Mount("/", carto)

	corsHandler := cors.New(makeCORSOptions(conf.GetCORSOrigins()))

	return corsHandler.Handler(router)
}

// makeCORSOptions allows any origin if origins contain "*". A request
// origin is reflected back then, never the literal "*".
func makeCORSOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}

	for _, v := range origins {
		if v == "*" {
			opts.AllowedOrigins = nil
			opts.AllowOriginFunc = func(string) bool {
				return true
			}

			break
		}
	}

	return opts
}

func runServer(ctx context.Context, conf *config, log *logger) error {
	geolocator := providers.NewIPAPI(makeHTTPClient(conf.GetGeolocationTimeout()))
	mapsAPI := providers.NewGoogleMaps(makeHTTPClient(conf.GetMapsTimeout()), conf.GetAPIKey())

	if mapsAPI.Credential() == "" {
		log.Info("Google Maps API key is not set, places and directions are disabled")
	}

	srv := &http.Server{
		Addr:              conf.GetListen(),
		Handler:           makeHandler(conf, log, geolocator, mapsAPI),
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.Info("Listen on " + conf.GetListen())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("cannot serve: %w", err)
	}

	return nil
}
