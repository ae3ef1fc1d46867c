package maplib

import (
	"net/http"
	"strings"
)

type httpLocationCountry struct {
	Alpha2Code   string `json:"alpha2_code"`
	Alpha3Code   string `json:"alpha3_code"`
	CommonName   string `json:"common_name"`
	OfficialName string `json:"official_name"`
}

type httpLocationResponse struct {
	Location    string `json:"location"`
	Coordinates struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinates"`
	Country httpLocationCountry `json:"country"`
	Cached  bool                `json:"cached"`
}

func (h httpHandler) handleLocation(w http.ResponseWriter, req *http.Request) {
	location, err := h.carto.Resolve(req.Context(), req.URL.Query().Get("client_ip"))
	if err != nil {
		h.sendOperationError(w, err)

		return
	}

	response := httpLocationResponse{
		Location: location.String(),
		Country:  h.country(location),
		Cached:   location.Cached,
	}
	response.Coordinates.Lat = location.Lat
	response.Coordinates.Lng = location.Lng

	h.encodeJSON(w, response)
}

func (h httpHandler) country(location Location) httpLocationCountry {
	rv := httpLocationCountry{
		CommonName: location.Country,
	}

	if location.CountryCode == "" {
		return rv
	}

	details, err := h.countryQuery.FindCountryByAlpha(strings.ToUpper(location.CountryCode))
	if err != nil {
		return rv
	}

	rv.Alpha2Code = details.Alpha2
	rv.Alpha3Code = details.Alpha3
	rv.CommonName = details.Name.Common
	rv.OfficialName = details.Name.Official

	return rv
}
