package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/api/dto"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/services"
)

type MetricsHandler struct {
	Engine *services.DriveMetricsEngine
}

// Drive estimates distance and duration between an origin and a destination.
// Routing is attempted by default; a missing estimate is a 404, not an error.
func (h *MetricsHandler) Drive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DriveMetricsRequest

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

	if req.DestinationLat == nil || req.DestinationLon == nil {
		writeError(w, r, http.StatusBadRequest, "destination_lat and destination_lon are required")
		return
	}
	if (req.OriginLat == nil) != (req.OriginLon == nil) {
		writeError(w, r, http.StatusBadRequest, "origin_lat and origin_lon must be supplied together")
		return
	}
	if req.OriginLat == nil && strings.TrimSpace(req.OriginText) == "" {
		writeError(w, r, http.StatusBadRequest, "an origin is required")
		return
	}

	q := domain.DriveQuery{
		OriginText:         strings.TrimSpace(req.OriginText),
		Destination:        &domain.Coordinates{Lat: *req.DestinationLat, Lon: *req.DestinationLon},
		AttemptRouting:     true,
		FallbackToGeodesic: true,
	}
	if req.OriginLat != nil {
		q.OriginCoords = &domain.Coordinates{Lat: *req.OriginLat, Lon: *req.OriginLon}
	}
	if req.AttemptRouting != nil {
		q.AttemptRouting = *req.AttemptRouting
	}
	if req.FallbackToGeodesic != nil {
		q.FallbackToGeodesic = *req.FallbackToGeodesic
	}

	metrics := h.Engine.Compute(r.Context(), q)
	if metrics == nil {
		writeError(w, r, http.StatusNotFound, "no estimate available")
		return
	}

	res := dto.DriveMetricsResponse{
		DistanceKm:      metrics.DistanceKm,
		DistanceMiles:   metrics.DistanceMiles,
		DurationMinutes: metrics.DurationMinutes,
		OriginLat:       metrics.Origin.Lat,
		OriginLon:       metrics.Origin.Lon,
		DestinationLat:  metrics.Destination.Lat,
		DestinationLon:  metrics.Destination.Lon,
		Fallback:        metrics.Fallback,
	}
	writeJSON(w, r, http.StatusOK, res)
}
