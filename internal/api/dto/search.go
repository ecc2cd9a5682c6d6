package dto

type SearchURLRequest struct {
	Query          string            `json:"query"`
	Site           string            `json:"site"`
	Category       string            `json:"category"`
	Postal         string            `json:"postal"`
	SearchDistance int               `json:"search_distance"`
	MinPrice       *int              `json:"min_price"`
	MaxPrice       *int              `json:"max_price"`
	Conditions     []string          `json:"conditions"`
	Extra          map[string]string `json:"extra"`
}

type SearchURLResponse struct {
	URL string `json:"url"`
}
