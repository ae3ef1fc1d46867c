package maplib

import (
	"context"
	"fmt"
	"net/url"
)

const (
	// MaxResults is a maximal number of places or steps which are
	// reported to the caller.
	MaxResults = 5

	// DefaultRadius is a search radius in meters.
	DefaultRadius = 5000

	embedMapZoom = "14"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

type PlacesFinder struct {
	maps     MapsAPI
	resolver *LocationResolver
}

// FindNearby searches for places which match query near location. If
// location is empty, it is detected with LocationResolver.
//
// Zero results is not an error: result has an empty list of places and
// a message.
func (p *PlacesFinder) FindNearby(ctx context.Context, query, location string) (PlacesResult, error) {
	credential := p.maps.Credential()
	if credential == "" {
		return PlacesResult{}, ErrConfiguration
	}

	if location == "" {
		detected, err := p.resolver.Resolve(ctx, "")
		if err != nil {
			return PlacesResult{}, fmt.Errorf("%w: %w", ErrLocationRequired, err)
		}

		location = detected.String()
	}

	searchQuery := query + " near " + location

	resp, err := p.maps.TextSearch(ctx, TextSearchRequest{
		Query:  searchQuery,
		Radius: DefaultRadius,
	})
	if err != nil {
		return PlacesResult{}, fmt.Errorf("cannot search for places: %w", err)
	}

	switch resp.Status {
	case statusOK, statusZeroResults:
	default:
		message := resp.ErrorMessage
		if message == "" {
			message = "Unknown error"
		}

		return PlacesResult{}, &UpstreamError{
			Service: "Google Maps",
			Status:  resp.Status,
			Message: message,
		}
	}

	records := resp.Results
	if len(records) > MaxResults {
		records = records[:MaxResults]
	}

	rv := PlacesResult{
		Query:    query,
		Location: location,
		Places:   make([]PlaceResult, 0, len(records)),
	}

	if len(records) == 0 {
		rv.Message = fmt.Sprintf("No %s found near %s", query, location)

		return rv, nil
	}

	for _, v := range records {
		rv.Places = append(rv.Places, makePlaceResult(v, location))
	}

	rv.Count = len(rv.Places)
	rv.EmbedMapURL = embedMapURL(credential, searchQuery)

	return rv, nil
}

func makePlaceResult(record PlaceRecord, location string) PlaceResult {
	name := record.Name
	if name == "" {
		name = unknownValue
	}

	address := record.FormattedAddress
	if address == "" {
		address = "Address not available"
	}

	return PlaceResult{
		Name:          name,
		Address:       address,
		Rating:        record.Rating,
		PlaceID:       record.PlaceID,
		MapsURL:       "https://www.google.com/maps/place/?q=place_id:" + url.QueryEscape(record.PlaceID),
		DirectionsURL: directionsURL(location, address),
	}
}

func directionsURL(origin, destination string) string {
	return "https://www.google.com/maps/dir/" + url.PathEscape(origin) + "/" + url.PathEscape(destination)
}

func embedMapURL(credential, searchQuery string) string {
	query := url.Values{}

	query.Set("key", credential)
	query.Set("q", searchQuery)
	query.Set("zoom", embedMapZoom)

	u := url.URL{
		Scheme:   "https",
		Host:     "www.google.com",
		Path:     "/maps/embed/v1/search",
		RawQuery: query.Encode(),
	}

	return u.String()
}

func NewPlacesFinder(maps MapsAPI, resolver *LocationResolver) *PlacesFinder {
	return &PlacesFinder{
		maps:     maps,
		resolver: resolver,
	}
}
