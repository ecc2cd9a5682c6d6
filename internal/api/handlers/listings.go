package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/api/dto"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/ports"
	"github.com/decoded1/marketplace-cli/internal/services"
)

type ListingHandler struct {
	Deps services.SessionDeps
}

// Extract runs one extraction session over the submitted fragments. Each
// request gets a fresh session, so location lookups are shared across the
// batch but never across requests.
func (h *ListingHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ExtractRequest

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

	site := strings.TrimSpace(req.Site)
	if site == "" {
		writeError(w, r, http.StatusBadRequest, "site is required")
		return
	}
	if len(req.Fragments) == 0 {
		writeError(w, r, http.StatusBadRequest, "fragments must be non-empty")
		return
	}
	if (req.OriginLat == nil) != (req.OriginLon == nil) {
		writeError(w, r, http.StatusBadRequest, "origin_lat and origin_lon must be supplied together")
		return
	}

	var originCoords *domain.Coordinates
	if req.OriginLat != nil {
		originCoords = &domain.Coordinates{Lat: *req.OriginLat, Lon: *req.OriginLon}
	}

	session := services.NewExtractSession(r.Context(), h.Deps, site, req.OriginText, originCoords)
	listings, err := session.Run(r.Context(), req.Fragments, req.Save)
	if err != nil {
		log.Printf("extract session failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ExtractResponse{
		Site:     site,
		Resolved: session.CacheSize(),
		Listings: make([]dto.ListingResponse, 0, len(listings)),
	}
	if coords := session.OriginCoords(); coords != nil {
		res.OriginLat = &coords.Lat
		res.OriginLon = &coords.Lon
	}
	for _, l := range listings {
		res.Listings = append(res.Listings, dto.FromListing(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

type ListingQueryHandler struct {
	Store ports.ListingStore
}

// List returns every stored listing.
func (h *ListingQueryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	listings, err := h.Store.ListListings(r.Context())
	if err != nil {
		log.Printf("list listings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListListingsResponse{Listings: make([]dto.ListingResponse, 0, len(listings))}
	for _, l := range listings {
		res.Listings = append(res.Listings, dto.FromListing(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}
