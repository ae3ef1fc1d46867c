package maplib

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConfiguration is returned if Maps API credential is not
	// provisioned. This is never retried.
	ErrConfiguration = errors.New("maps api credential is not configured")

	// ErrLocationUnavailable is returned if geolocation has failed by any
	// reason.
	ErrLocationUnavailable = errors.New("location is unavailable")

	// ErrLocationRequired is returned if an operation needs a location,
	// it was not given and cannot be detected.
	ErrLocationRequired = errors.New("location is required")

	// ErrNoRouteFound is returned if routing upstream has no route
	// between given points.
	ErrNoRouteFound = errors.New("no route found between the locations")

	// ErrNetwork is returned on transport failures: timeouts, DNS
	// errors, refused connections and unexpected HTTP statuses.
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse is returned if upstream has responded with a
	// body we cannot parse.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrInvalidRequest is returned if caller has passed incorrect
	// parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// UpstreamError is returned if remote API has responded with a logical
// failure status, like REQUEST_DENIED or INVALID_REQUEST.
type UpstreamError struct {
	Service string
	Status  string
	Message string
}

func (u *UpstreamError) Error() string {
	return fmt.Sprintf("%s error (%s): %s", u.Service, u.Status, u.Message)
}

type jsonHTTPError struct {
	Error struct {
		Message string `json:"message"`
		Context string `json:"context"`
	} `json:"error"`
}

type httpError struct {
	message    string
	err        error
	statusCode int
}

func (h *httpError) Message() string {
	if h == nil {
		return ""
	}

	return h.message
}

func (h *httpError) Err() string {
	if err := errors.Unwrap(h); err != nil {
		return err.Error()
	}

	return ""
}

func (h *httpError) StatusCode() int {
	if h != nil && h.statusCode != 0 {
		return h.statusCode
	}

	return http.StatusInternalServerError
}

func (h *httpError) Unwrap() error {
	if h == nil {
		return nil
	}

	return h.err
}

func (h *httpError) Error() string {
	switch {
	case h == nil:
		return ""
	case h.err != nil && h.message != "":
		return h.message + ": " + h.err.Error()
	case h.err != nil:
		return h.err.Error()
	}

	return h.message
}

func (h *httpError) MarshalJSON() ([]byte, error) {
	value := jsonHTTPError{}
	value.Error.Message = h.Message()
	value.Error.Context = h.Err()

	return json.Marshal(&value)
}

// newHTTPError converts an error of maplib operation into an error with
// a status code and user-facing message.
func newHTTPError(err error) *httpError {
	rv := &httpError{
		err:        err,
		statusCode: http.StatusInternalServerError,
	}

	var upstreamErr *UpstreamError

	switch {
	case errors.As(err, &upstreamErr):
		rv.message = upstreamErr.Service + " API Error: " + upstreamErr.Message
		rv.statusCode = http.StatusBadRequest
	case errors.Is(err, ErrConfiguration):
		rv.message = "Google Maps API key not configured"
	case errors.Is(err, ErrLocationRequired):
		rv.message = "Could not determine location"
		rv.statusCode = http.StatusBadRequest
	case errors.Is(err, ErrLocationUnavailable):
		rv.message = "Could not detect location"
	case errors.Is(err, ErrNoRouteFound):
		rv.message = "No route found between the locations"
		rv.statusCode = http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		rv.message = "Invalid request"
		rv.statusCode = http.StatusBadRequest
	case errors.Is(err, ErrNetwork):
		rv.message = "Network error"
	default:
		rv.message = "Internal error"
	}

	return rv
}
