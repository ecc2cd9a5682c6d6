package dto

type ResolveLocationResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Quality string  `json:"quality"`
}

type IPCheckResponse struct {
	OriginLat     float64 `json:"origin_lat"`
	OriginLon     float64 `json:"origin_lon"`
	IPLat         float64 `json:"ip_lat"`
	IPLon         float64 `json:"ip_lon"`
	IPDescription string  `json:"ip_description"`
	DistanceMiles float64 `json:"distance_miles"`
	Mismatch      bool    `json:"mismatch"`
}
