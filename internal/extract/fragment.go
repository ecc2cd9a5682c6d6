package extract

// Fragment is one pre-parsed listing card handed over by the page-parsing
// collaborator. The extractor never touches raw HTML; the DOM layer reduces
// each search-result card to these text pieces.
//
// MetaParts carries the stripped strings of the card's meta block in document
// order: the posted label first, then (optionally) the neighborhood text.
// LocationText is the standalone location element used when the meta block
// carries no neighborhood.
type Fragment struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	PriceText    string   `json:"price_text"`
	MetaParts    []string `json:"meta_parts"`
	LocationText string   `json:"location_text"`
}
