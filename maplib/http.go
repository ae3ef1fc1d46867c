package maplib

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pariz/gountries"
)

type httpHandler struct {
	carto        *Cartographer
	countryQuery *gountries.Query
}

func (h httpHandler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	h.encodeJSON(w, struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}{
		Message: "Cartographer: location, places and directions API",
		Status:  "running",
	})
}

func (h httpHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.encodeJSON(w, struct {
		Status    string  `json:"status"`
		Timestamp float64 `json:"timestamp"`
	}{
		Status:    "healthy",
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

func (h httpHandler) handleStats(w http.ResponseWriter, _ *http.Request) {
	h.encodeJSON(w, struct {
		Results []*UsageStats `json:"results"`
	}{
		Results: h.carto.UsageStats(),
	})
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	h.sendHTTPError(w, &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	})
}

func (h httpHandler) sendHTTPError(w http.ResponseWriter, e *httpError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	h.encodeJSON(w, e)
}

func (h httpHandler) sendOperationError(w http.ResponseWriter, err error) {
	h.sendHTTPError(w, newHTTPError(err))
}

func (h httpHandler) requireParam(w http.ResponseWriter, req *http.Request, name string) (string, bool) {
	value := req.URL.Query().Get(name)
	if value == "" {
		h.sendError(w, nil, "Parameter "+name+" is required", http.StatusBadRequest)

		return "", false
	}

	return value, true
}

// NewHTTPHandler returns a router which exposes operations of
// Cartographer as JSON endpoints.
func NewHTTPHandler(carto *Cartographer) http.Handler {
	handler := httpHandler{
		carto:        carto,
		countryQuery: gountries.New(),
	}
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)

	router.Get("/", handler.handleRoot)
	router.Get("/health", handler.handleHealth)
	router.Get("/stats", handler.handleStats)
	router.Get("/location", handler.handleLocation)
	router.Get("/places/nearby", handler.handlePlacesNearby)
	router.Get("/places/directions", handler.handlePlacesDirections)

	return router
}
