package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/adapters/geocode"
	"github.com/decoded1/marketplace-cli/internal/api/dto"
	"github.com/decoded1/marketplace-cli/internal/ports"
	"github.com/decoded1/marketplace-cli/internal/services"
)

type OriginHandler struct {
	Geocoder ports.Geocoder
	Locator  *geocode.IPLocator
}

// IPCheck compares a configured origin against the caller's IP-derived
// location. The origin comes from the query string or the environment
// override.
func (h *OriginHandler) IPCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	originText := strings.TrimSpace(r.URL.Query().Get("origin"))
	if originText == "" {
		originText = services.OriginFromEnv()
	}
	if originText == "" {
		writeError(w, r, http.StatusBadRequest, "an origin is required")
		return
	}

	resolver := &services.OriginResolver{Geocoder: h.Geocoder}
	origin, ok := resolver.ResolveOrigin(r.Context(), originText)
	if !ok {
		writeError(w, r, http.StatusNotFound, "origin could not be resolved")
		return
	}

	cmp, err := services.CompareOriginWithIP(r.Context(), origin, h.Locator)
	if err != nil {
		log.Printf("ip check failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "ip location unavailable")
		return
	}

	res := dto.IPCheckResponse{
		OriginLat:     cmp.OriginCoords.Lat,
		OriginLon:     cmp.OriginCoords.Lon,
		IPLat:         cmp.IPCoords.Lat,
		IPLon:         cmp.IPCoords.Lon,
		IPDescription: cmp.IPDescription,
		DistanceMiles: cmp.DistanceMiles,
		Mismatch:      cmp.Mismatch,
	}
	writeJSON(w, r, http.StatusOK, res)
}
