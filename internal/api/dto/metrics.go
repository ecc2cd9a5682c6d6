package dto

type DriveMetricsRequest struct {
	OriginText         string   `json:"origin_text"`
	OriginLat          *float64 `json:"origin_lat"`
	OriginLon          *float64 `json:"origin_lon"`
	DestinationLat     *float64 `json:"destination_lat"`
	DestinationLon     *float64 `json:"destination_lon"`
	AttemptRouting     *bool    `json:"attempt_routing"`
	FallbackToGeodesic *bool    `json:"fallback_to_geodesic"`
}

type DriveMetricsResponse struct {
	DistanceKm      float64  `json:"distance_km"`
	DistanceMiles   float64  `json:"distance_miles"`
	DurationMinutes *float64 `json:"duration_minutes"`
	OriginLat       float64  `json:"origin_lat"`
	OriginLon       float64  `json:"origin_lon"`
	DestinationLat  float64  `json:"destination_lat"`
	DestinationLon  float64  `json:"destination_lon"`
	Fallback        bool     `json:"fallback"`
}
