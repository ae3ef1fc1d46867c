// This package provides a set of structs and functions which are used
// to answer location questions: where is a caller, what is nearby and
// how to get from one place to another.
//
// maplib is core of the cartographer project. You can treat the rest of
// the application as an _example_ on how to use this library: how to
// pass parameters from HTTP requests, how to generate responses, how to
// implement providers.
//
// Cartographer is a main entity of maplib. It wires together 3
// components:
//
// LocationResolver geolocates an identifier (usually a client IP) and
// keeps results in a LocationCache for a short period of time.
//
// PlacesFinder searches for places near some location with a help of
// MapsAPI and reshapes results into PlaceResult list with navigation
// links.
//
// DirectionsFinder asks MapsAPI for a route and reports a summary of the
// first leg of the first route.
//
// Each component makes at most one outbound call per operation. There
// are no retries.
package maplib
