package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/decoded1/marketplace-cli/internal/api/dto"
	"github.com/decoded1/marketplace-cli/internal/search"
)

// BuildSearchURL assembles a marketplace search URL from filter parameters.
func BuildSearchURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchURLRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	url, err := search.BuildURL(search.Params{
		Query:          req.Query,
		Site:           req.Site,
		Category:       req.Category,
		Postal:         req.Postal,
		SearchDistance: req.SearchDistance,
		MinPrice:       req.MinPrice,
		MaxPrice:       req.MaxPrice,
		Conditions:     req.Conditions,
		Extra:          req.Extra,
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SearchURLResponse{URL: url})
}
