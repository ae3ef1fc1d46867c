package providers

const (
	// Identifier for ip-api.com.
	NameIPAPI = "ipapi"

	// Identifier for Google Maps Platform.
	NameGoogleMaps = "google_maps"
)
