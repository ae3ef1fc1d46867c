package providers

import "errors"

// ErrLookupFailed is returned if geolocation provider has reported
// that it cannot geolocate an address, for example, a private one.
var ErrLookupFailed = errors.New("provider has failed to geolocate")
