package providers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/9seconds/cartographer/maplib"
)

const ipapiFields = "status,message,lat,lon,city,regionName,country,countryCode"

type ipapiResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	City        string   `json:"city"`
	RegionName  string   `json:"regionName"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
}

type ipapiProvider struct {
	client maplib.HTTPClient
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Locate(ctx context.Context, ip net.IP) (maplib.GeoLookupResult, error) {
	result := maplib.GeoLookupResult{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.buildURL(ip), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("%w: unexpected status code: %d", maplib.ErrNetwork, resp.StatusCode)
	}

	jsonResponse := ipapiResponse{}

	if err := decodeResponse(resp.Body, &jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.Status == "fail" {
		return result, fmt.Errorf("%w: %s", ErrLookupFailed, jsonResponse.Message)
	}

	result.Lat = jsonResponse.Lat
	result.Lng = jsonResponse.Lon
	result.City = jsonResponse.City
	result.Region = jsonResponse.RegionName
	result.Country = jsonResponse.Country
	result.CountryCode = jsonResponse.CountryCode

	return result, nil
}

func (i ipapiProvider) buildURL(ip net.IP) string {
	getQuery := url.Values{}

	getQuery.Set("fields", ipapiFields)

	u := url.URL{
		Scheme:   "http",
		Host:     "ip-api.com",
		Path:     "/json/",
		RawQuery: getQuery.Encode(),
	}

	if ip != nil {
		u.Path += ip.String()
	}

	return u.String()
}

// NewIPAPI returns a geolocator which uses free tier of ip-api.com. If
// no IP is given, ip-api.com geolocates an address of this host.
func NewIPAPI(client maplib.HTTPClient) maplib.Geolocator {
	return ipapiProvider{
		client: client,
	}
}
