package maplib

import (
	"fmt"
	"net"
)

const unknownValue = "Unknown"

// GeoLookupResult is a result of Geolocator lookup. Lat and Lng are
// pointers because a provider may not know coordinates at all.
type GeoLookupResult struct {
	Lat         *float64
	Lng         *float64
	City        string
	Region      string
	Country     string
	CountryCode string
}

type Location struct {
	City        string
	Region      string
	Country     string
	CountryCode string
	Lat         float64
	Lng         float64
	Cached      bool
}

// String returns a human readable representation of the location, like
// "Nizhny Novgorod, Nizhny Novgorod Oblast, Russia".
func (l Location) String() string {
	return fmt.Sprintf("%s, %s, %s", l.City, l.Region, l.Country)
}

type TextSearchRequest struct {
	Query  string
	Radius int
}

type PlaceRecord struct {
	Name             string
	FormattedAddress string
	PlaceID          string
	Rating           *float64
}

type TextSearchResponse struct {
	Status       string
	ErrorMessage string
	Results      []PlaceRecord
}

type DirectionsRequest struct {
	Origin      string
	Destination string
	Mode        TravelMode
}

type RouteStep struct {
	HTMLInstructions string
	Distance         string
}

type RouteLeg struct {
	Distance string
	Duration string
	Steps    []RouteStep
}

type Route struct {
	Legs []RouteLeg
}

type DirectionsResponse struct {
	Status       string
	ErrorMessage string
	Routes       []Route
}

type PlaceResult struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Rating        *float64 `json:"rating"`
	PlaceID       string   `json:"place_id"`
	MapsURL       string   `json:"maps_url"`
	DirectionsURL string   `json:"directions_url"`
}

type PlacesResult struct {
	Query       string        `json:"query"`
	Location    string        `json:"location"`
	Places      []PlaceResult `json:"places"`
	Count       int           `json:"count"`
	EmbedMapURL string        `json:"embed_map_url,omitempty"`
	Message     string        `json:"message,omitempty"`
}

type DirectionsStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
}

type DirectionsSummary struct {
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	Mode          TravelMode       `json:"mode"`
	Distance      string           `json:"distance"`
	Duration      string           `json:"duration"`
	DirectionsURL string           `json:"directions_url"`
	Steps         []DirectionsStep `json:"steps"`
	TotalSteps    int              `json:"total_steps"`
}

// identifierIP returns an IP address if identifier looks like one.
func identifierIP(identifier string) net.IP {
	return net.ParseIP(identifier)
}

func orUnknown(value string) string {
	if value == "" {
		return unknownValue
	}

	return value
}
