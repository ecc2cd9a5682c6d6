package handlers

import (
	"net/http"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/api/dto"
	"github.com/decoded1/marketplace-cli/internal/ports"
	"github.com/decoded1/marketplace-cli/internal/services"
)

type LocationHandler struct {
	Geocoder ports.Geocoder // nil disables the network tier
}

// Resolve maps a freeform location string to coordinates. Each call uses a
// fresh resolver, so results reflect the tiers, not a warm cache.
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	location := strings.TrimSpace(q.Get("location"))
	if location == "" {
		writeError(w, r, http.StatusBadRequest, "location is required")
		return
	}

	resolver := services.NewResolver(h.Geocoder, nil)
	loc := resolver.Resolve(r.Context(), location, q.Get("url"), q.Get("site"))
	if loc == nil {
		writeError(w, r, http.StatusNotFound, "location could not be resolved")
		return
	}

	res := dto.ResolveLocationResponse{
		Lat:     loc.Coords.Lat,
		Lon:     loc.Coords.Lon,
		Quality: string(loc.Quality),
	}
	writeJSON(w, r, http.StatusOK, res)
}
