package maplib

import "net/http"

func (h httpHandler) handlePlacesNearby(w http.ResponseWriter, req *http.Request) {
	query, ok := h.requireParam(w, req, "query")
	if !ok {
		return
	}

	result, err := h.carto.FindNearby(req.Context(), query, req.URL.Query().Get("location"))
	if err != nil {
		h.sendOperationError(w, err)

		return
	}

	h.encodeJSON(w, result)
}

func (h httpHandler) handlePlacesDirections(w http.ResponseWriter, req *http.Request) {
	origin, ok := h.requireParam(w, req, "origin")
	if !ok {
		return
	}

	destination, ok := h.requireParam(w, req, "destination")
	if !ok {
		return
	}

	mode, err := ParseTravelMode(req.URL.Query().Get("mode"))
	if err != nil {
		h.sendError(w, err, "Unsupported travel mode", http.StatusBadRequest)

		return
	}

	summary, err := h.carto.GetDirections(req.Context(), origin, destination, mode)
	if err != nil {
		h.sendOperationError(w, err)

		return
	}

	h.encodeJSON(w, summary)
}
